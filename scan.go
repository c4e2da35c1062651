package cyw55500

import (
	"encoding/binary"
	"time"

	"github.com/soypat/cyw55500/whd"
)

// escanParams builds the escan_params_t request body: version=1,
// action=START, a synthetic sync_id, a wildcard SSID, a broadcast BSSID,
// bss_type=any, -1 (chip default) for
// nprobes/active_time/passive_time/home_time, and channel_num=0 (no channel
// restriction).
func escanParams(syncID uint16) []byte {
	buf := make([]byte, 76)
	binary.LittleEndian.PutUint32(buf[0:4], 1)                      // version
	binary.LittleEndian.PutUint32(buf[4:8], whd.EscanActionStart)    // action
	binary.LittleEndian.PutUint16(buf[8:10], syncID)
	for i := 10; i < 16; i++ {
		buf[i] = 0xFF // broadcast bssid
	}
	binary.LittleEndian.PutUint32(buf[16:20], 0) // ssid len 0: wildcard
	buf[52] = 0xFF                                // bss_type = any (-1, int8)
	buf[53] = whd.ScanTypeActive
	binary.LittleEndian.PutUint32(buf[56:60], 0xFFFFFFFF) // nprobes = -1
	binary.LittleEndian.PutUint32(buf[60:64], 0xFFFFFFFF) // active_time = -1
	binary.LittleEndian.PutUint32(buf[64:68], 0xFFFFFFFF) // passive_time = -1
	binary.LittleEndian.PutUint32(buf[68:72], 0xFFFFFFFF) // home_time = -1
	// buf[72:76] stays zero: channel_num = 0.
	return buf
}

// Scan triggers an active escan and collects up to max de-duplicated
// ScanResults delivered on the SDPCM event channel, bounded by
// config.ScanBudget. Requires StateUp; results arrive on the
// WLC_E_ESCANRESULT event path.
func (d *Device) Scan(max int) ([]ScanResult, error) {
	if err := d.requireState(StateUp); err != nil {
		return nil, err
	}
	if _, err := d.iovar("escan", true, escanParams(1)); err != nil {
		return nil, err
	}

	var results []ScanResult
	deadline := time.Now().Add(d.config.ScanBudget)
	for time.Now().Before(deadline) {
		channel, payload, err := d.recvFrame(d.rxBuf[:])
		if err != nil {
			return dedupScanResults(results, max), err
		}
		if payload == nil || channel != whd.SDPCMEventChannel {
			d.bus.DelayMillis(1)
			continue
		}
		hdr, body, err := decodeEventHeader(payload)
		if err != nil {
			continue
		}
		switch hdr.EventType {
		case whd.EventEscanResult:
			if r, ok := decodeScanResult(body); ok {
				results = append(results, r)
			}
			if hdr.Status != whd.EventStatusSuccess {
				return dedupScanResults(results, max), nil
			}
		}
		if max > 0 && len(results) >= max {
			break
		}
	}
	return dedupScanResults(results, max), nil
}
