package cyw55500

import (
	"encoding/binary"
	"log/slog"

	"github.com/soypat/cyw55500/whd"
)

// Up brings the WLAN interface up (WLC_UP) and transitions StateFwReady to
// StateUp.
func (d *Device) Up() error {
	if err := d.requireState(StateFwReady); err != nil {
		return err
	}
	if _, err := d.ioctl(whd.WLCUp, true, nil); err != nil {
		return err
	}
	d.setState(StateUp)
	return nil
}

// Down takes the WLAN interface down (WLC_DOWN) and returns to StateFwReady.
func (d *Device) Down() error {
	if err := d.requireState(StateUp); err != nil {
		return err
	}
	if _, err := d.ioctl(whd.WLCDown, true, nil); err != nil {
		return err
	}
	d.setState(StateFwReady)
	return nil
}

// Disconnect issues WLC_DISASSOC, leaving the interface up but unassociated.
func (d *Device) Disconnect() error {
	if err := d.requireState(StateUp); err != nil {
		return err
	}
	_, err := d.ioctl(whd.WLCDisassoc, true, nil)
	return err
}

// BSSID returns the BSSID of the currently associated access point, or all
// zero bytes if not associated.
func (d *Device) BSSID() ([6]byte, error) {
	var bssid [6]byte
	if err := d.requireState(StateUp); err != nil {
		return bssid, err
	}
	resp, err := d.ioctl(whd.WLCGetBSSID, false, make([]byte, 6))
	if err != nil {
		return bssid, err
	}
	copy(bssid[:], resp)
	return bssid, nil
}

// IsConnected reports whether the interface holds a non-zero BSSID; an
// all-zero BSSID means no current association.
func (d *Device) IsConnected() (bool, error) {
	bssid, err := d.BSSID()
	if err != nil {
		return false, err
	}
	return bssid != [6]byte{}, nil
}

// RSSI returns the received signal strength of the current association in
// dBm.
func (d *Device) RSSI() (int32, error) {
	if err := d.requireState(StateUp); err != nil {
		return 0, err
	}
	resp, err := d.ioctl(whd.WLCGetRSSI, false, make([]byte, 4))
	if err != nil {
		return 0, err
	}
	if len(resp) < 4 {
		return 0, ErrIO
	}
	return int32(binary.LittleEndian.Uint32(resp)), nil
}

// Connect associates to ssid in station mode: SET_INFRA=1
// (infrastructure mode), SET_AUTH=0 (open system), the wpa_auth iovar set to
// WPA2AuthPSK, SET_WSEC_PMK carrying the raw passphrase key,
// SET_WSEC=WSECAES,
// and finally SET_SSID with the requested network name. With an empty
// passphrase the network is treated as open: wpa_auth and WSEC are set to 0
// and no SET_WSEC_PMK is sent. Each ioctl is bounded by config.BCDCBudget;
// config.ConnectBudget is not read. Connect returns once SET_SSID is
// acknowledged and does not wait for a link event; callers poll
// IsConnected/RSSI afterward to observe the association.
func (d *Device) Connect(ssid, passphrase string) error {
	if err := d.requireState(StateUp); err != nil {
		return err
	}
	if len(ssid) == 0 || len(ssid) > 32 {
		return ErrInvalidArgument
	}
	if len(passphrase) > 64 {
		return ErrInvalidArgument
	}

	infra := make([]byte, 4)
	binary.LittleEndian.PutUint32(infra, 1)
	if _, err := d.ioctl(whd.WLCSetInfra, true, infra); err != nil {
		return err
	}

	auth := make([]byte, 4)
	binary.LittleEndian.PutUint32(auth, whd.AuthOpenSystem)
	if _, err := d.ioctl(whd.WLCSetAuth, true, auth); err != nil {
		return err
	}

	wpaAuthVal, wsecVal := uint32(whd.WPA2AuthPSK), uint32(whd.WSECAES)
	if passphrase == "" {
		wpaAuthVal, wsecVal = whd.WPAAuthDisabled, whd.WSECNone
	}

	wpaAuth := make([]byte, 4)
	binary.LittleEndian.PutUint32(wpaAuth, wpaAuthVal)
	if _, err := d.iovar("wpa_auth", true, wpaAuth); err != nil {
		return err
	}

	if passphrase != "" {
		pmk := make([]byte, 2+2+64)
		binary.LittleEndian.PutUint16(pmk[0:2], uint16(len(passphrase)))
		copy(pmk[4:], passphrase)
		if _, err := d.ioctl(whd.WLCSetWSECPMK, true, pmk); err != nil {
			return err
		}
	}

	wsec := make([]byte, 4)
	binary.LittleEndian.PutUint32(wsec, wsecVal)
	if _, err := d.ioctl(whd.WLCSetWSEC, true, wsec); err != nil {
		return err
	}

	ssidBuf := make([]byte, 4+32)
	binary.LittleEndian.PutUint32(ssidBuf[0:4], uint32(len(ssid)))
	copy(ssidBuf[4:], ssid)
	if _, err := d.ioctl(whd.WLCSetSSID, true, ssidBuf); err != nil {
		return err
	}
	d.trace("Connect:sent", slog.String("ssid", ssid))
	return nil
}
