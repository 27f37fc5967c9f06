package core

// CartError is the closed taxonomy of chip-level failures a driver
// operation can return, per spec.md §7. It implements error so callers can
// use errors.Is against the sentinel values below.
type CartError struct {
	code cartErrorCode
}

type cartErrorCode uint8

const (
	codeNone cartErrorCode = iota
	codeUnsupportedOp
	codeDs2401NoResp
	codeDs2401IDError
	codeX76Nack
	codeX76PollFail
	codeX76VerifyFail
	codeZs01Nack
	codeZs01Error
	codeZs01CrcMismatch
)

var errorText = map[cartErrorCode]string{
	codeUnsupportedOp:   "operation not supported by this driver",
	codeDs2401NoResp:    "no 1-Wire device responded",
	codeDs2401IDError:   "1-Wire identifier failed CRC check",
	codeX76Nack:         "X76 chip did not acknowledge",
	codeX76PollFail:     "X76 ACK polling timed out (wrong key?)",
	codeX76VerifyFail:   "X76 write verification failed",
	codeZs01Nack:        "ZS01 chip did not acknowledge",
	codeZs01Error:       "ZS01 returned an error response",
	codeZs01CrcMismatch: "ZS01 response failed CRC check",
}

func (e *CartError) Error() string {
	if e == nil || e.code == codeNone {
		return "no error"
	}
	return errorText[e.code]
}

// Is lets errors.Is compare CartError sentinels by code, the way the
// standard library compares io.EOF.
func (e *CartError) Is(target error) bool {
	other, ok := target.(*CartError)
	if !ok {
		return false
	}
	return e.code == other.code
}

var (
	// ErrUnsupportedOp is returned by a capability a driver variant doesn't
	// implement. It is never surfaced to the user (spec.md §7): the UI layer
	// hides the corresponding action instead of rendering this error.
	ErrUnsupportedOp = &CartError{codeUnsupportedOp}
	// ErrDs2401NoResp means the 1-Wire reset pulse went unanswered.
	ErrDs2401NoResp = &CartError{codeDs2401NoResp}
	// ErrDs2401IDError means a 1-Wire-read Identifier failed its CRC-8.
	ErrDs2401IDError = &CartError{codeDs2401IDError}
	// ErrX76Nack means an X76 command/param/key byte went unacknowledged.
	ErrX76Nack = &CartError{codeX76Nack}
	// ErrX76PollFail means the ACK-poll loop in _x76_command exhausted its
	// attempts; per spec.md §7 this always means "wrong key" after
	// set_data_key, and is the canonical wrong-key signal on any read/write.
	ErrX76PollFail = &CartError{codeX76PollFail}
	// ErrX76VerifyFail means a post-write readback did not match.
	ErrX76VerifyFail = &CartError{codeX76VerifyFail}
	// ErrZs01Nack means the ZS01 did not acknowledge a request packet.
	ErrZs01Nack = &CartError{codeZs01Nack}
	// ErrZs01Error means the ZS01 returned a non-zero response command byte
	// (wraps the 0x01..0x05 response code, see Zs01ErrorWithCode).
	ErrZs01Error = &CartError{codeZs01Error}
	// ErrZs01CrcMismatch means the response failed its CRC-16 check after
	// being unscrambled with zscipher.ResponseKey. Every request embeds that
	// same fixed key, so the current and the previous transaction's response
	// keys are one key and a single decode covers both.
	ErrZs01CrcMismatch = &CartError{codeZs01CrcMismatch}
)

// Zs01ResponseCode is the raw one-byte status the ZS01 reports in a
// response packet's command field.
type Zs01ResponseCode uint8

const (
	Zs01NoError        Zs01ResponseCode = 0x00
	Zs01SecurityError1 Zs01ResponseCode = 0x01
	Zs01Unknown1       Zs01ResponseCode = 0x02
	Zs01Unknown2       Zs01ResponseCode = 0x03
	Zs01SecurityError2 Zs01ResponseCode = 0x04
	Zs01Unknown3       Zs01ResponseCode = 0x05
)

// Zs01ErrorWithCode wraps ErrZs01Error together with the chip's raw response
// code. Codes 0x02, 0x03 and 0x05 are undocumented upstream (spec.md §9
// Open Questions) and are preserved opaquely rather than interpreted.
type Zs01ErrorWithCode struct {
	Code Zs01ResponseCode
}

func (e *Zs01ErrorWithCode) Error() string {
	return ErrZs01Error.Error()
}

func (e *Zs01ErrorWithCode) Unwrap() error {
	return ErrZs01Error
}
