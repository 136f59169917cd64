package identity

import (
	"strings"
	"sync"

	"github.com/google/uuid"
)

// The marketplace's JSON API only answers requests that look like they
// come from the official iOS app, so every call carries this header set.
const (
	appVersion       = "11.5.1"
	mobileUserAgent  = "mobile.de_iPhone_de/" + appVersion
	mobileDeviceType = "phone"
)

var (
	deviceOnce sync.Once
	deviceID   string
)

// DeviceID returns the process-wide spoofed iOS device identifier.
func DeviceID() string {
	deviceOnce.Do(func() {
		deviceID = strings.ToUpper(uuid.NewString())
	})
	return deviceID
}

// MobileHeaders returns the header set that impersonates the official
// mobile app on JSON API calls.
func MobileHeaders() map[string]string {
	return map[string]string{
		"x-mobile-client":      "de.mobile.iphone.app/" + appVersion + "/" + DeviceID(),
		"user-agent":           mobileUserAgent,
		"x-mobile-device-type": mobileDeviceType,
	}
}
