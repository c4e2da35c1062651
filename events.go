package cyw55500

import (
	"encoding/binary"

	"golang.org/x/exp/slices"

	"github.com/soypat/cyw55500/whd"
)

// Security is the authentication/cipher class of an access point observed
// by a scan.
type Security uint8

const (
	SecurityOpen Security = iota
	SecurityWEP
	SecurityWPAPSK
	SecurityWPA2PSK
	SecurityWPA3SAE
)

func (s Security) String() string {
	switch s {
	case SecurityOpen:
		return "open"
	case SecurityWEP:
		return "wep"
	case SecurityWPAPSK:
		return "wpa-psk"
	case SecurityWPA2PSK:
		return "wpa2-psk"
	case SecurityWPA3SAE:
		return "wpa3-sae"
	default:
		return "unknown"
	}
}

// ScanResult is one access point observed by a scan, decoded from a
// WLC_E_ESCANRESULT event payload.
type ScanResult struct {
	BSSID    [6]byte
	SSID     string
	RSSI     int32
	Channel  uint16
	WSEC     uint32
	Security Security
}

// eventHeader mirrors wl_event_msg_t's fixed fields, recovered from
// the chip's wl_event_msg_t wire layout.
type eventHeader struct {
	Version   uint16
	Flags     uint16
	EventType uint32
	Status    uint32
	Reason    uint32
	AuthType  uint32
	DataLen   uint32
	Addr      [6]byte
	IfName    [16]byte
	IfIdx     uint8
	BSSCfgIdx uint8
}

// decodeEventHeader parses the fixed wl_event_msg_t prefix of an event-
// channel SDPCM payload. The event payload follows immediately after.
func decodeEventHeader(buf []byte) (eventHeader, []byte, error) {
	var h eventHeader
	if len(buf) < whd.EventMsgSize {
		return h, nil, ErrInvalidArgument
	}
	h.Version = binary.BigEndian.Uint16(buf[0:2])
	h.Flags = binary.BigEndian.Uint16(buf[2:4])
	h.EventType = binary.BigEndian.Uint32(buf[4:8])
	h.Status = binary.BigEndian.Uint32(buf[8:12])
	h.Reason = binary.BigEndian.Uint32(buf[12:16])
	h.AuthType = binary.BigEndian.Uint32(buf[16:20])
	h.DataLen = binary.BigEndian.Uint32(buf[20:24])
	copy(h.Addr[:], buf[24:30])
	copy(h.IfName[:], buf[30:46])
	h.IfIdx = buf[46]
	h.BSSCfgIdx = buf[47]
	return h, buf[whd.EventMsgSize:], nil
}

// decodeScanResult parses one bss_info-style record out of an escan result
// payload: bssid[6], ssid_len u8, ssid[32], channel u16, rssi int8 (dBm),
// wsec u32. This is a reduced record shape, not the chip's full bss_info_t,
// sized for the fields Scan actually surfaces. Security is derived from the
// WSEC cipher bitmask alone: the reduced record carries no RSN/auth-suite
// field, so any cipher (TKIP or AES) is reported as WPA2-PSK, the only
// keyed mode this driver's Connect supports.
func decodeScanResult(buf []byte) (ScanResult, bool) {
	const minLen = 6 + 1 + 32 + 2 + 1 + 4
	if len(buf) < minLen {
		return ScanResult{}, false
	}
	var r ScanResult
	copy(r.BSSID[:], buf[0:6])
	ssidLen := int(buf[6])
	if ssidLen > 32 {
		ssidLen = 32
	}
	r.SSID = string(buf[7 : 7+ssidLen])
	r.Channel = binary.LittleEndian.Uint16(buf[39:41])
	r.RSSI = int32(int8(buf[41]))
	r.WSEC = binary.LittleEndian.Uint32(buf[42:46])
	switch {
	case r.WSEC == whd.WSECNone:
		r.Security = SecurityOpen
	case r.WSEC&whd.WSECWEP != 0:
		r.Security = SecurityWEP
	default:
		r.Security = SecurityWPA2PSK
	}
	return r, true
}

// dedupScanResults removes duplicate BSSIDs (the chip may report the same AP
// more than once across probe responses), preserving first-come order, and
// truncates to max. slices.ContainsFunc does the membership check without
// reordering the accumulated results, unlike a sort-then-compact pass.
func dedupScanResults(results []ScanResult, max int) []ScanResult {
	var out []ScanResult
	for _, r := range results {
		if slices.ContainsFunc(out, func(o ScanResult) bool { return o.BSSID == r.BSSID }) {
			continue
		}
		out = append(out, r)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}
