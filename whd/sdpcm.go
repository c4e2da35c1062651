package whd

// SDPCM header size and channel multiplex values.
const (
	SDPCMHeaderSize = 12

	SDPCMControlChannel = 0
	SDPCMEventChannel   = 1
	SDPCMDataChannel    = 2
	SDPCMGlomChannel    = 3
)

// BCDC header size and protocol fields.
const (
	BCDCHeaderSize = 16
	BCDCProtoVer   = 2

	BCDCFlagVerShift = 4
	BCDCFlagSet      = 1 << 1
	BCDCFlagSumGood  = 0x04
	BCDCFlagSumNeeded = 0x08
	BCDCReqIDShift   = 16
)
