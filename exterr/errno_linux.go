package exterr

import "golang.org/x/sys/unix"

// errnoTable maps every errno defined by the host to an extended error
// record.
//
// EWOULDBLOCK, EDEADLOCK and ENOTSUP are aliases of EAGAIN, EDEADLK and
// EOPNOTSUPP on Linux and are covered by those entries.
var errnoTable = map[unix.Errno]Record{
	unix.EPERM:           {CodeAccessDenied, ClassAccessDenied, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOENT:          {CodeFileNotFound, ClassNotFound, ActionPromptUserReenter, LocusBlockDev},
	unix.ESRCH:           {CodeProcAddressNotFound, ClassNotFound, ActionAbortAfterCleanup, LocusUnknown},
	unix.EINTR:           {CodeInvalidSysCall, ClassTmpSituation, ActionRetry, LocusUnknown},
	unix.EIO:             {CodeReadFault, ClassHWFail, ActionRetryAfterUserInterv, LocusUnknown},
	unix.ENXIO:           {CodeLevel4DriverNotFound, ClassSysFail, ActionAbortAfterCleanup, LocusUnknown},
	unix.E2BIG:           {CodeBadArguments, ClassOutOfResource, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOEXEC:         {CodeBadExeFormat, ClassBadFormat, ActionAbortAfterCleanup, LocusUnknown},
	unix.EBADF:           {CodeInvalidHandle, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.ECHILD:          {CodeNoChildren, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.EAGAIN:          {CodeFCBUnavailable, ClassTmpSituation, ActionDelayedRetry, LocusUnknown},
	unix.ENOMEM:          {CodeInsufficientMemory, ClassOutOfResource, ActionImmediateAbort, LocusMemRelated},
	unix.EACCES:          {CodeAccessDenied, ClassAccessDenied, ActionAbortAfterCleanup, LocusBlockDev},
	unix.EFAULT:          {CodeMBAInval, ClassAppProgError, ActionImmediateAbort, LocusMemRelated},
	unix.ENOTBLK:         {CodeDriveInval, ClassMediaError, ActionPromptUserReenter, LocusBlockDev},
	unix.EBUSY:           {CodeDriveBusy, ClassLocked, ActionAbortAfterCleanup, LocusUnknown},
	unix.EEXIST:          {CodeFileExists, ClassAlreadyExists, ActionPromptUserReenter, LocusBlockDev},
	unix.EXDEV:           {CodeNotSameDevice, ClassCannot, ActionPromptUserReenter, LocusBlockDev},
	unix.ENODEV:          {CodeUnknownMedia, ClassBadFormat, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOTDIR:         {CodePathNotFound, ClassBadFormat, ActionPromptUserReenter, LocusBlockDev},
	unix.EISDIR:          {CodeFileNotFound, ClassBadFormat, ActionPromptUserReenter, LocusBlockDev},
	unix.EINVAL:          {CodeBadArguments, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENFILE:          {CodeTooManyOpenFiles, ClassOutOfResource, ActionImmediateAbort, LocusUnknown},
	unix.EMFILE:          {CodeTooManyOpenFiles, ClassOutOfResource, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOTTY:          {CodeUnknownIOCTLCategory, ClassAppProgError, ActionAbortAfterCleanup, LocusCharDev},
	unix.ETXTBSY:         {CodeCannotCompleteFileOp, ClassTmpSituation, ActionDelayedRetry, LocusBlockDev},
	unix.EFBIG:           {CodeInsufficientDiskSpace, ClassOutOfResource, ActionRetryAfterUserInterv, LocusBlockDev},
	unix.ENOSPC:          {CodeDiskFull, ClassOutOfResource, ActionRetryAfterUserInterv, LocusBlockDev},
	unix.ESPIPE:          {CodeSeekOnDeviceOrPipe, ClassCannot, ActionIgnore, LocusUnknown},
	unix.EROFS:           {CodeWriteProtected, ClassCannot, ActionRetryAfterUserInterv, LocusBlockDev},
	unix.EMLINK:          {CodeTooManyRedirections, ClassOutOfResource, ActionIgnore, LocusBlockDev},
	unix.EPIPE:           {CodeBrokenPipe, ClassSysFail, ActionAbortAfterCleanup, LocusUnknown},
	unix.EDOM:            {CodeDataInval, ClassAppProgError, ActionIgnore, LocusUnknown},
	unix.ERANGE:          {CodeFixupOverflow, ClassAppProgError, ActionIgnore, LocusUnknown},
	unix.EDEADLK:         {CodeLockViolation, ClassLocked, ActionImmediateAbort, LocusUnknown},
	unix.ENAMETOOLONG:    {CodeNetNameLimitExceeded, ClassSysFail, ActionRetryAfterUserInterv, LocusUnknown},
	unix.ENOLCK:          {CodeLockCountExceeded, ClassOutOfResource, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOSYS:          {CodeInvalidFunctionNumber, ClassInternSysError, ActionIgnore, LocusUnknown},
	unix.ENOTEMPTY:       {CodeDirNotEmpty, ClassCannot, ActionAbortAfterCleanup, LocusBlockDev},
	unix.ELOOP:           {CodeTooManyRedirections, ClassOutOfResource, ActionIgnore, LocusBlockDev},
	unix.ENOMSG:          {CodeBadArguments, ClassBadFormat, ActionIgnore, LocusUnknown},
	unix.EIDRM:           {CodeNetNameDeleted, ClassNotFound, ActionIgnore, LocusUnknown},
	unix.ECHRNG:          {CodeInvalidParameter, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.EL2NSYNC:        {CodeGeneralFailure, ClassSysFail, ActionAbortAfterCleanup, LocusUnknown},
	unix.EL3HLT:          {CodeGeneralFailure, ClassSysFail, ActionAbortAfterCleanup, LocusUnknown},
	unix.EL3RST:          {CodeGeneralFailure, ClassSysFail, ActionRetry, LocusUnknown},
	unix.ELNRNG:          {CodeInvalidParameter, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.EUNATCH:         {CodeLevel4DriverNotFound, ClassSysFail, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOCSI:          {CodeGeneralFailure, ClassSysFail, ActionAbortAfterCleanup, LocusUnknown},
	unix.EL2HLT:          {CodeGeneralFailure, ClassSysFail, ActionAbortAfterCleanup, LocusUnknown},
	unix.EBADE:           {CodeDataInval, ClassBadFormat, ActionAbortAfterCleanup, LocusUnknown},
	unix.EBADR:           {CodeBadRequestLength, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.EXFULL:          {CodeSharingBufferOverflow, ClassOutOfResource, ActionDelayedRetry, LocusUnknown},
	unix.ENOANO:          {CodeDataInval, ClassNotFound, ActionAbortAfterCleanup, LocusUnknown},
	unix.EBADRQC:         {CodeInvalidFunctionNumber, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.EBADSLT:         {CodeInvalidParameter, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.EBFONT:          {CodeFormatInval, ClassBadFormat, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOSTR:          {CodeNetDeviceTypeIncorrect, ClassBadFormat, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ENODATA:         {CodeNoDataAvailable, ClassTmpSituation, ActionIgnore, LocusNetRelated},
	unix.ETIME:           {CodeTemporarilyPaused, ClassTime, ActionIgnore, LocusUnknown},
	unix.ENOSR:           {CodeInsufficientMemory, ClassOutOfResource, ActionImmediateAbort, LocusNetRelated},
	unix.ENONET:          {CodeNetDeviceGone, ClassNotFound, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ENOPKG:          {CodeLevel4DriverNotFound, ClassNotFound, ActionAbortAfterCleanup, LocusUnknown},
	unix.EREMOTE:         {CodeDriveLockedByOther, ClassLocked, ActionAbortAfterCleanup, LocusBlockDev},
	unix.ENOLINK:         {CodeNetDeviceGone, ClassHWFail, ActionIgnore, LocusNetRelated},
	unix.EADV:            {CodeUnexpectedNetError, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ESRMNT:          {CodeUnexpectedNetError, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ECOMM:           {CodeNetWriteFault, ClassMediaError, ActionRetry, LocusNetRelated},
	unix.EPROTO:          {CodeUnexpectedNetError, ClassMediaError, ActionAbortAfterCleanup, LocusNetRelated},
	unix.EMULTIHOP:       {CodeNetDeviceTypeIncorrect, ClassAppProgError, ActionIgnore, LocusNetRelated},
	unix.EDOTDOT:         {CodeUnexpectedNetError, ClassAppProgError, ActionIgnore, LocusNetRelated},
	unix.EBADMSG:         {CodeBadArguments, ClassBadFormat, ActionIgnore, LocusUnknown},
	unix.EOVERFLOW:       {CodeSharingBufferOverflow, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOTUNIQ:        {CodeDuplicateNameOnNet, ClassAlreadyExists, ActionAbortAfterCleanup, LocusNetRelated},
	unix.EBADFD:          {CodeInvalidHandle, ClassAppProgError, ActionAbortAfterCleanup, LocusUnknown},
	unix.EREMCHG:         {CodeNetNameNotFound, ClassNotFound, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ELIBACC:         {CodeAccessDenied, ClassAccessDenied, ActionAbortAfterCleanup, LocusBlockDev},
	unix.ELIBBAD:         {CodeBadExeFormat, ClassBadFormat, ActionAbortAfterCleanup, LocusBlockDev},
	unix.ELIBSCN:         {CodeBadExeFormat, ClassBadFormat, ActionAbortAfterCleanup, LocusBlockDev},
	unix.ELIBMAX:         {CodeTooManyOpenFiles, ClassOutOfResource, ActionAbortAfterCleanup, LocusUnknown},
	unix.ELIBEXEC:        {CodeBadExeFormat, ClassBadFormat, ActionAbortAfterCleanup, LocusUnknown},
	unix.EILSEQ:          {CodeInvalidCharacter, ClassBadFormat, ActionIgnore, LocusCharDev},
	unix.ERESTART:        {CodeInvalidSysCall, ClassTmpSituation, ActionRetry, LocusUnknown},
	unix.ESTRPIPE:        {CodeBrokenPipe, ClassTmpSituation, ActionDelayedRetry, LocusUnknown},
	unix.EUSERS:          {CodeTooManyOpenFiles, ClassOutOfResource, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENOTSOCK:        {CodeNetDeviceTypeIncorrect, ClassBadFormat, ActionPromptUserReenter, LocusNetRelated},
	unix.EDESTADDRREQ:    {CodeRemoteNotListening, ClassNotFound, ActionRetryAfterUserInterv, LocusNetRelated},
	unix.EMSGSIZE:        {CodeNetWriteFault, ClassOutOfResource, ActionIgnore, LocusNetRelated},
	unix.EPROTOTYPE:      {CodeNetRequestNotSupported, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ENOPROTOOPT:     {CodeNetRequestNotSupported, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.EPROTONOSUPPORT: {CodeNotSupportedOnNet, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ESOCKTNOSUPPORT: {CodeNotSupportedOnNet, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.EOPNOTSUPP:      {CodeInvalidParameter, ClassInternSysError, ActionIgnore, LocusUnknown},
	unix.EPFNOSUPPORT:    {CodeNotSupportedOnNet, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.EAFNOSUPPORT:    {CodeNotSupportedOnNet, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.EADDRINUSE:      {CodeDuplicateNameOnNet, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.EADDRNOTAVAIL:   {CodeNetNameNotFound, ClassNotFound, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ENETDOWN:        {CodeNetDeviceGone, ClassNotFound, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ENETUNREACH:     {CodeNetDeviceGone, ClassNotFound, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ENETRESET:       {CodeRemoteNotListening, ClassMediaError, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ECONNABORTED:    {CodeNetNameDeleted, ClassSysFail, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ECONNRESET:      {CodeUnexpectedAdapterClose, ClassUnknown, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ENOBUFS:         {CodeInsufficientMemory, ClassOutOfResource, ActionImmediateAbort, LocusMemRelated},
	unix.EISCONN:         {CodeDuplicateRedirection, ClassAlreadyExists, ActionIgnore, LocusNetRelated},
	unix.ENOTCONN:        {CodeRemoteNotListening, ClassNotFound, ActionRetryAfterUserInterv, LocusNetRelated},
	unix.ESHUTDOWN:       {CodeNetDeviceGone, ClassNotFound, ActionAbortAfterCleanup, LocusNetRelated},
	unix.ETOOMANYREFS:    {CodeTooManyRedirections, ClassOutOfResource, ActionIgnore, LocusBlockDev},
	unix.ETIMEDOUT:       {CodeUnexpectedAdapterClose, ClassTime, ActionRetry, LocusNetRelated},
	unix.ECONNREFUSED:    {CodeNetRequestNotAccepted, ClassUnknown, ActionDelayedRetry, LocusNetRelated},
	unix.EHOSTDOWN:       {CodeRemoteNotListening, ClassNotFound, ActionRetryAfterUserInterv, LocusNetRelated},
	unix.EHOSTUNREACH:    {CodeRemoteNotListening, ClassNotFound, ActionRetryAfterUserInterv, LocusNetRelated},
	unix.EALREADY:        {CodeNetBusy, ClassTmpSituation, ActionDelayedRetry, LocusNetRelated},
	unix.EINPROGRESS:     {CodeNetBusy, ClassTmpSituation, ActionDelayedRetry, LocusNetRelated},
	unix.ESTALE:          {CodeInvalidHandle, ClassInternSysError, ActionImmediateAbort, LocusBlockDev},
	unix.EUCLEAN:         {CodeGeneralFailure, ClassMediaError, ActionRetryAfterUserInterv, LocusBlockDev},
	unix.ENOTNAM:         {CodeFormatInval, ClassBadFormat, ActionAbortAfterCleanup, LocusUnknown},
	unix.ENAVAIL:         {CodeNetDeviceGone, ClassNotFound, ActionAbortAfterCleanup, LocusUnknown},
	unix.EISNAM:          {CodeFormatInval, ClassBadFormat, ActionAbortAfterCleanup, LocusUnknown},
	unix.EREMOTEIO:       {CodeReadFault, ClassHWFail, ActionRetryAfterUserInterv, LocusNetRelated},
	unix.EDQUOT:          {CodeDiskLimitExceeded, ClassOutOfResource, ActionAbortAfterCleanup, LocusBlockDev},
	unix.ENOMEDIUM:       {CodeUnknownMedia, ClassMediaError, ActionRetryAfterUserInterv, LocusBlockDev},
	unix.EMEDIUMTYPE:     {CodeUnknownMedia, ClassMediaError, ActionPromptUserReenter, LocusBlockDev},
	unix.ECANCELED:       {CodeMoreDataAvailable, ClassUnknown, ActionIgnore, LocusUnknown},
	unix.ENOKEY:          {CodeLoginAttemptInval, ClassAccessDenied, ActionAbortAfterCleanup, LocusUnknown},
	unix.EKEYEXPIRED:     {CodeLoginAttemptInval, ClassAccessDenied, ActionAbortAfterCleanup, LocusUnknown},
	unix.EKEYREVOKED:     {CodeLoginAttemptInval, ClassAccessDenied, ActionAbortAfterCleanup, LocusUnknown},
	unix.EKEYREJECTED:    {CodeLoginAttemptInval, ClassAccessDenied, ActionAbortAfterCleanup, LocusUnknown},
	unix.EOWNERDEAD:      {CodeSemaphoreOwnerDied, ClassInternSysError, ActionIgnore, LocusUnknown},
	unix.ENOTRECOVERABLE: {CodeSemaphoreOwnerDied, ClassInternSysError, ActionImmediateAbort, LocusUnknown},
	unix.ERFKILL:         {CodeNetDeviceGone, ClassHWFail, ActionRetryAfterUserInterv, LocusNetRelated},
	unix.EHWPOISON:       {CodeMCBDestroyed, ClassHWFail, ActionImmediateAbort, LocusMemRelated},
}

// maxErrno is the highest errno the host defines.
const maxErrno = unix.EHWPOISON
