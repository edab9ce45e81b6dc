package adswrapper

import (
	"strings"

	"github.com/llehouerou/ssai-innovid/internal/ima"
)

// InnovidFramework is the api-framework marker of Innovid companions.
const InnovidFramework = "innovid"

// URL fragments that identify an Innovid interactive tag.
var interactiveURLMarkers = []string{".html?", "tag/get.php?tag="}

// IsCompanionSupported reports whether c is an Innovid interactive companion.
func IsCompanionSupported(c ima.CompanionAd) bool {
	if !strings.EqualFold(c.APIFramework, InnovidFramework) || c.ResourceValue == "" {
		return false
	}
	for _, m := range interactiveURLMarkers {
		if strings.Contains(c.ResourceValue, m) {
			return true
		}
	}
	return false
}

// FindInteractiveCompanion returns the first supported companion in list order.
func FindInteractiveCompanion(companions []ima.CompanionAd) (ima.CompanionAd, bool) {
	for _, c := range companions {
		if IsCompanionSupported(c) {
			return c, true
		}
	}
	return ima.CompanionAd{}, false
}

// companionsOf inspects the ad's companions. An inspection error counts as
// no companions.
func companionsOf(ad *ima.Ad) []ima.CompanionAd {
	if ad == nil {
		return nil
	}
	list, err := ad.CompanionAds()
	if err != nil {
		return nil
	}
	return list
}
