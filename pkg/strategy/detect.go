package strategy

import "strings"

// knownSocialBundlePrefixes maps well-known social-app bundle ID prefixes
// to the Social variant (§4.10 detector, step 3).
var knownSocialBundlePrefixes = []string{
	"com.instagram", "com.facebook", "com.twitter", "com.zhiliaoapp.musically",
	"com.burbn", "com.atebits", "com.toyopagroup.picaboo", "com.linkedin",
}

var socialAppNameWords = []string{"instagram", "facebook", "twitter", "tiktok", "linkedin", "threads"}

// Detect picks a Strategy for a target (§4.10 detector): an explicit
// override wins, then a desktop-like target type, then a known social
// bundle-ID prefix, then an app-name word list, then the mobile default.
func Detect(explicitOverride, targetType, bundleID, appName string) Strategy {
	switch strings.ToLower(explicitOverride) {
	case "mobile":
		return Mobile{}
	case "desktop":
		return Desktop{}
	case "social":
		return Social{}
	}

	if strings.EqualFold(targetType, "generic-window") {
		return Desktop{}
	}

	lowerBundle := strings.ToLower(bundleID)
	for _, prefix := range knownSocialBundlePrefixes {
		if strings.HasPrefix(lowerBundle, prefix) {
			return Social{}
		}
	}

	lowerApp := strings.ToLower(appName)
	for _, word := range socialAppNameWords {
		if strings.Contains(lowerApp, word) {
			return Social{}
		}
	}

	return Mobile{}
}
