package fetcher

// headerProfile is a complete desktop-browser request signature: user agent
// plus the accompanying headers a real browser of that family sends on
// top-level navigation.
type headerProfile struct {
	Name      string
	UserAgent string
	Headers   map[string]string
}

// chromeProfile mimics a current Chrome on Windows, client hints included.
func chromeProfile() headerProfile {
	return headerProfile{
		Name:      "chrome-profile",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
		Headers: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.9",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
			"Sec-Fetch-Dest":            "document",
			"Sec-Fetch-Mode":            "navigate",
			"Sec-Fetch-Site":            "none",
			"Sec-Fetch-User":            "?1",
			"Sec-CH-UA":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
			"Sec-CH-UA-Mobile":          "?0",
			"Sec-CH-UA-Platform":        `"Windows"`,
			"Cache-Control":             "max-age=0",
		},
	}
}

// firefoxProfile mimics a current Firefox on macOS. A different engine family
// from the first profile, so sites keying on Chromium signatures see
// something else entirely.
func firefoxProfile() headerProfile {
	return headerProfile{
		Name:      "firefox-profile",
		UserAgent: "Mozilla/5.0 (Macintosh; Intel Mac OS X 14.1; rv:121.0) Gecko/20100101 Firefox/121.0",
		Headers: map[string]string{
			"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
			"Accept-Language":           "en-US,en;q=0.5",
			"Connection":                "keep-alive",
			"Upgrade-Insecure-Requests": "1",
			"Sec-Fetch-Dest":            "document",
			"Sec-Fetch-Mode":            "navigate",
			"Sec-Fetch-Site":            "none",
			"Sec-Fetch-User":            "?1",
		},
	}
}
