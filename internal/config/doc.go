// Package config provides configuration structures and utilities for scopecrawl.
// It defines the crawl-scope thresholds shared by the URL classifier and the
// content filter, together with the loader for the crawler-settings file.
package config
