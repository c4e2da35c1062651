package whd

// WLC_* ioctl command codes, as exposed by the chip's BCDC/IOCTL transport.
const (
	WLCGetMagic   = 0
	WLCGetVersion = 1
	WLCUp         = 2
	WLCDown       = 3

	WLCGetInfra = 19
	WLCSetInfra = 20
	WLCGetAuth  = 21
	WLCSetAuth  = 22
	WLCGetBSSID = 23

	WLCGetSSID    = 25
	WLCSetSSID    = 26
	WLCGetChannel = 29
	WLCSetChannel = 30

	WLCSetKey = 45

	WLCScan        = 50
	WLCScanResults = 51
	WLCDisassoc    = 52
	WLCReassoc     = 53

	WLCGetRSSI = 127

	WLCGetWSEC     = 133
	WLCSetWSEC     = 134
	WLCSetWSECPMK  = 268
	WLCGetWPAAuth  = 164
	WLCSetWPAAuth  = 165

	WLCGetVar = 262
	WLCSetVar = 263
)

// WSEC (wireless security) bitmask values used by SetWSEC.
const (
	WSECNone = 0
	WSECWEP  = 1
	WSECTKIP = 2
	WSECAES  = 4
)

// WPA_AUTH values used by the wpa_auth iovar.
const (
	WPAAuthDisabled = 0x0000
	WPAAuthWPAPSK   = 0x0004
	WPA2AuthPSK     = 0x0080
	WPA3AuthSAEPSK  = 0x40000
)

// AUTH (802.11 authentication algorithm) values used by WLC_SET_AUTH.
const (
	AuthOpenSystem = 0
	AuthSharedKey  = 1
)
