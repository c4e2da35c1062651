// Package whd holds the bit-exact register addresses, ioctl numbers, and
// protocol constants for the Cypress/Infineon CYW55500 WiFi chip, the way
// github.com/soypat/cyw43439's whd package holds the equivalent constants
// for the CYW43439.
package whd

// SDIO function numbers.
const (
	FuncBus       = 0 // CCCR / FBR, function 0.
	FuncBackplane = 1 // Chip backplane window, function 1.
	FuncWLAN      = 2 // WLAN data/control path, function 2.
)

// CCCR registers (function 0 address space).
const (
	CCCRIOEnable    = 0x02
	CCCRIOReady     = 0x03
	CCCRIntEnable   = 0x04
	CCCRIntPending  = 0x05
	CCCRIOAbort     = 0x06
	CCCRBusIfCtrl   = 0x07
	CCCRFn0BlkSize  = 0x10
	CCCRBRCMCardCap = 0xF0
	CCCRBRCMCardCtl = 0xF1
	CCCRBRCMSepInt  = 0xF2
)

// Function-ready/enable bits in CCCRIOEnable/CCCRIOReady.
const (
	IOFunc1Enable = 1 << 1
	IOFunc2Enable = 1 << 2
)

// Interrupt enable bits in CCCRIntEnable.
const (
	IntEnFunc0 = 1 << 0
	IntEnFunc1 = 1 << 1
	IntEnFunc2 = 1 << 2
)

// BRCM_CARDCTRL bits.
const (
	BRCMCardCtrlWLANReset = 1 << 1
	BRCMCardCtrlBTReset   = 1 << 2
)

// Function-1 misc registers, 0x10000-0x1001F.
const (
	SBSDIOFunc1MiscBase = 0x10000
	SPROMCS             = 0x10000
	SPROMInfo           = 0x10001
	Watermark           = 0x10008
	DeviceCtl           = 0x10009
	SBAddrLow           = 0x1000A
	SBAddrMid           = 0x1000B
	SBAddrHigh          = 0x1000C
	FrameCtrl           = 0x1000D
	ChipClockCSR        = 0x1000E
	SDIOPullup          = 0x1000F
	SleepCSR            = 0x1001F
)

// ChipClockCSR (a.k.a CHIPCLKCSR) bits.
const (
	ForceALP        = 0x01
	ForceHT         = 0x02
	ForceILP        = 0x04
	ALPAvailReq     = 0x08
	HTAvailReq      = 0x10
	ForceHWClkReqOff = 0x20
	ALPAvail        = 0x40
	HTAvail         = 0x80
)

// Backplane window addressing.
const (
	SBWindowMask     = 0xFFFF8000
	SBOffsetAddrMask = 0x7FFF
	SBOffsetLimit    = 0x8000
	SBAccess32bFlag  = 0x8000
)

// ChipCommon core registers, relative to the ChipCommon base.
const (
	ChipCommonBase = 0x18000000
	CCChipID       = 0x000
	CCCapabilities = 0x004
	CCCoreControl  = 0x008
	CCChipControl  = 0x028
	CCClkDiv       = 0x0A4
)

// Chip identity word layout at ChipCommon+CCChipID.
const (
	ChipIDMask    = 0x0000FFFF
	ChipRevMask   = 0x000F0000
	ChipRevShift  = 16
	ExpectedChipID = 0xD8CC // CYW55500.
)

// SDIO core (function-1 backing core) register offsets, relative to the
// SDIO core's base address.
const (
	SDIOCoreBase           = ChipCommonBase // mailbox default derivation; see DESIGN.md.
	SDIOCoreIntStatus      = 0x020
	SDIOCoreHostIntMask    = 0x024
	SDIOCoreSBIntStatus    = 0x02C
	SDIOCoreToSBMailbox    = 0x040
	SDIOCoreToHostMailbox  = 0x044
	SDIOCoreToSBMailboxData   = 0x048
	SDIOCoreToHostMailboxData = 0x04C
	SDIOCoreChipID         = 0x330
)

// HostMailboxData is the fixed mailbox address used to detect firmware
// readiness; see DESIGN.md for the choice between this and the SDIO-core
// relative offset known vendor driver ports disagree on.
const HostMailboxData = 0x18002048

// Host mailbox data bits (see cyw55500_regs.h HMB_DATA_*).
const (
	HMBDataNakHandled = 0x0001
	HMBDataDevReady   = 0x0002
	HMBDataFC         = 0x0004
	HMBDataFWReady    = 0x0008
	HMBDataFWHalt     = 0x0010
)

// Interrupt status bits (SDIOCoreIntStatus).
const (
	IHMBFCChange  = 1 << 8
	IHMBFrameInd  = 1 << 9
	IHMBHostInt   = 1 << 10
)

// BCMA core IDs and layout, used to halt/release the ARM core during
// firmware download.
const (
	BCMACoreChipCommon = 0x800
	BCMACore80211      = 0x812
	BCMACoreSDIODev    = 0x829
	BCMACoreARMCR4     = 0x83E
	BCMACorePMU        = 0x827
	BCMACoreSize       = 0x1000

	BCMAResetCtl      = 0x800
	BCMAResetCtlReset = 0x1
	BCMAIOCtl         = 0x408
	BCMAIOCtlClk      = 0x1
)

// ARM Cortex-R4 core registers, relative to the ARM core's base address.
const (
	ARMCR4Cap      = 0x04
	ARMCR4BankIdx  = 0x40
	ARMCR4BankInfo = 0x44
)

// CYW55500 chip-revision RAM parameters: the two RAM bases selected by
// chip revision; only one revision is modeled here, see DESIGN.md.
const (
	RAMBaseRevA0 = 0x3A0000
	RAMBaseRevA1 = 0x3A0000

	// NVRAMDownloadAddr is the fixed NVRAM destination address, used as-is
	// rather than derived from ram_base+ram_size-len; see DESIGN.md.
	NVRAMDownloadAddr = 0x80000
)

// SDIO block sizes used for function 1 and function 2.
const (
	Func1BlockSize = 64
	Func2BlockSize = 512
	F2Watermark    = 0x40
)
