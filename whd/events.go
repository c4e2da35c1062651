package whd

// WLC_E_* firmware event types delivered on the SDPCM event channel.
// Only the subset this driver parses is named.
const (
	EventAssoc       = 0
	EventAuth        = 3
	EventLink        = 16
	EventSetSSID     = 46
	EventEscanResult = 69
)

// Event status values carried in wl_event_msg_t.status.
const (
	EventStatusSuccess = 0
)

// wl_event_msg_t field sizes (version,flags,event_type,status,reason,
// auth_type,datalen,addr[6],ifname[16],ifidx,bsscfgidx), big-endian.
const EventMsgSize = 2 + 2 + 4 + 4 + 4 + 4 + 4 + 6 + 16 + 1 + 1

// escan (WLC_E_ESCANRESULT) parameter block field values.
const (
	EscanActionStart  = 1
	EscanActionAbort  = 2
	EscanActionContinue = 3

	ScanTypeActive = 0
	BSSTypeAny     = -1
)
