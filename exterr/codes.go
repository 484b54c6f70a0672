package exterr

// Code is an extended error code, as returned in AX.
type Code uint8

// Class is the error class returned in BH.
type Class uint8

// Action is the suggested action returned in BL.
type Action uint8

// Locus is the error locus returned in CH.
type Locus uint8

// Extended error codes.
//
// 0xFF is reserved as the "leave unchanged" sentinel, so the code which
// some systems define as "invalid drive" at that value is not given a
// name here.
const (
	CodeNone                   Code = 0x00
	CodeFunctionNumberInval    Code = 0x01
	CodeFileNotFound           Code = 0x02
	CodePathNotFound           Code = 0x03
	CodeTooManyOpenFiles       Code = 0x04
	CodeAccessDenied           Code = 0x05
	CodeInvalidHandle          Code = 0x06
	CodeMCBDestroyed           Code = 0x07
	CodeInsufficientMemory     Code = 0x08
	CodeMBAInval               Code = 0x09
	CodeFormatInval            Code = 0x0B
	CodeAccessCodeInval        Code = 0x0C
	CodeDataInval              Code = 0x0D
	CodeFixupOverflow          Code = 0x0E
	CodeDriveInval             Code = 0x0F
	CodeNotSameDevice          Code = 0x11
	CodeNoMoreFiles            Code = 0x12
	CodeWriteProtected         Code = 0x13
	CodeBadRequestLength       Code = 0x18
	CodeUnknownMedia           Code = 0x1A
	CodeReadFault              Code = 0x1E
	CodeGeneralFailure         Code = 0x1F
	CodeSharingViolation       Code = 0x20
	CodeLockViolation          Code = 0x21
	CodeFCBUnavailable         Code = 0x23
	CodeSharingBufferOverflow  Code = 0x24
	CodeCannotCompleteFileOp   Code = 0x26
	CodeInsufficientDiskSpace  Code = 0x27
	CodeNetRequestNotSupported Code = 0x32
	CodeRemoteNotListening     Code = 0x33
	CodeDuplicateNameOnNet     Code = 0x34
	CodeNetNameNotFound        Code = 0x35
	CodeNetBusy                Code = 0x36
	CodeNetDeviceGone          Code = 0x37
	CodeUnexpectedNetError     Code = 0x3B
	CodeNetNameDeleted         Code = 0x40
	CodeNetDeviceTypeIncorrect Code = 0x42
	CodeNetNameLimitExceeded   Code = 0x44
	CodeTemporarilyPaused      Code = 0x46
	CodeNetRequestNotAccepted  Code = 0x47
	CodeInvalidNetVersion      Code = 0x49
	CodeUnexpectedAdapterClose Code = 0x4A
	CodeLoginAttemptInval      Code = 0x4C
	CodeDiskLimitExceeded      Code = 0x4D
	CodeFileExists             Code = 0x50
	CodeTooManyRedirections    Code = 0x54
	CodeDuplicateRedirection   Code = 0x55
	CodeInvalidParameter       Code = 0x57
	CodeNetWriteFault          Code = 0x58
	CodeNotSupportedOnNet      Code = 0x59
	CodeInvalidSysCall         Code = 0x5F
	CodeOperInvalInHandler     Code = 0x68
	CodeSemaphoreOwnerDied     Code = 0x69
	CodeDriveLockedByOther     Code = 0x6C
	CodeBrokenPipe             Code = 0x6D
	CodeDiskFull               Code = 0x70
	CodeUnknownIOCTLCategory   Code = 0x75
	CodeLevel4DriverNotFound   Code = 0x77
	CodeInvalidFunctionNumber  Code = 0x78
	CodeInvalidCharacter       Code = 0x7B
	CodeProcAddressNotFound    Code = 0x7F
	CodeNoChildren             Code = 0x80
	CodeSeekOnDeviceOrPipe     Code = 0x84
	CodeDriveBusy              Code = 0x8E
	CodeDirNotEmpty            Code = 0x91
	CodeBadArguments           Code = 0xA0
	CodeNoMoreProcessSlots     Code = 0xA4
	CodeLockCountExceeded      Code = 0xB4
	CodeBadExeFormat           Code = 0xC1
	CodeNoDataAvailable        Code = 0xE8
	CodeMoreDataAvailable      Code = 0xEA
	CodeDontChange             Code = 0xFF
)

// Error classes.
const (
	ClassNone           Class = 0x00
	ClassOutOfResource  Class = 0x01
	ClassTmpSituation   Class = 0x02
	ClassAccessDenied   Class = 0x03
	ClassInternSysError Class = 0x04
	ClassHWFail         Class = 0x05
	ClassSysFail        Class = 0x06
	ClassAppProgError   Class = 0x07
	ClassNotFound       Class = 0x08
	ClassBadFormat      Class = 0x09
	ClassLocked         Class = 0x0A
	ClassMediaError     Class = 0x0B
	ClassAlreadyExists  Class = 0x0C
	ClassUnknown        Class = 0x0D
	ClassCannot         Class = 0x0E
	ClassTime           Class = 0x0F
	ClassDontChange     Class = 0xFF
)

// Suggested actions.
const (
	ActionNone                 Action = 0x00
	ActionRetry                Action = 0x01
	ActionDelayedRetry         Action = 0x02
	ActionPromptUserReenter    Action = 0x03
	ActionAbortAfterCleanup    Action = 0x04
	ActionImmediateAbort       Action = 0x05
	ActionIgnore               Action = 0x06
	ActionRetryAfterUserInterv Action = 0x07
	ActionDontChange           Action = 0xFF
)

// Error loci.
const (
	LocusNone       Locus = 0x00
	LocusUnknown    Locus = 0x01
	LocusBlockDev   Locus = 0x02
	LocusNetRelated Locus = 0x03
	LocusCharDev    Locus = 0x04
	LocusMemRelated Locus = 0x05
	LocusDontChange Locus = 0xFF
)

// Record is the extended error state.
type Record struct {
	Code   Code
	Class  Class
	Action Action
	Locus  Locus
}

// DontChange is a record which changes nothing when set.
var DontChange = Record{
	Code:   CodeDontChange,
	Class:  ClassDontChange,
	Action: ActionDontChange,
	Locus:  LocusDontChange,
}

// Records for the domain errors raised by the kernel itself, which have
// no host errno.
var (
	// NoMoreFiles ends a directory search.
	NoMoreFiles = Record{CodeNoMoreFiles, ClassNotFound, ActionIgnore, LocusBlockDev}

	// FileNotFound is raised when a search pattern matches nothing.
	FileNotFound = Record{CodeFileNotFound, ClassNotFound, ActionPromptUserReenter, LocusBlockDev}

	// PathNotFound is raised when a directory in a search pattern is missing.
	PathNotFound = Record{CodePathNotFound, ClassNotFound, ActionPromptUserReenter, LocusBlockDev}

	// SearchAccessDenied is raised when a directory in a search pattern
	// cannot be read.
	SearchAccessDenied = Record{CodeAccessDenied, ClassAccessDenied, ActionAbortAfterCleanup, LocusBlockDev}

	// SearchReadFault is raised on an I/O error while searching.
	SearchReadFault = Record{CodeReadFault, ClassMediaError, ActionRetryAfterUserInterv, LocusBlockDev}

	// InsufficientMemory is raised when a search cannot hold its results.
	InsufficientMemory = Record{CodeInsufficientMemory, ClassOutOfResource, ActionImmediateAbort, LocusMemRelated}

	// MCBDestroyed is raised when a memory block cannot be released.
	MCBDestroyed = Record{CodeMCBDestroyed, ClassInternSysError, ActionImmediateAbort, LocusMemRelated}

	// BadArguments is raised for invalid dates and times.
	BadArguments = Record{CodeBadArguments, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown}

	// Unmapped is used for an errno the table does not know.
	Unmapped = Record{CodeAccessCodeInval, ClassUnknown, ActionIgnore, LocusUnknown}
)
