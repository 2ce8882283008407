package errors

import (
	"io"
	"testing"
)

func TestABCIInfo(t *testing.T) {
	cases := map[string]struct {
		err      error
		debug    bool
		wantCode uint32
		wantLog  string
	}{
		"success": {
			err:      nil,
			wantCode: SuccessABCICode,
		},
		"typed nil is success": {
			err:      (*Error)(nil),
			wantCode: SuccessABCICode,
		},
		"registered error": {
			err:      ErrInsufficientAmount,
			wantCode: 12,
			wantLog:  "insufficient amount",
		},
		"wrapped registered error keeps its code and context": {
			err:      Wrapf(Wrap(ErrUnauthorized, "only the sender"), "stream %d", 3),
			wantCode: 2,
			wantLog:  "stream 3: only the sender: unauthorized",
		},
		"field error": {
			err:      Field("Amount", ErrAmount, "must be positive"),
			wantCode: 13,
			wantLog:  `field "Amount": must be positive: invalid amount`,
		},
		"grouped errors report the first code": {
			err:      Append(ErrEmpty, ErrOverflow),
			wantCode: 9,
		},
		"unregistered error is hidden": {
			err:      Wrap(io.ErrUnexpectedEOF, "read genesis"),
			wantCode: 1,
			wantLog:  "internal error",
		},
		"unregistered error in debug mode": {
			err:      Wrap(io.ErrUnexpectedEOF, "read genesis"),
			debug:    true,
			wantCode: 1,
			wantLog:  "read genesis: unexpected EOF",
		},
		"custom code": {
			err:      contractErr{},
			wantCode: 1300,
			wantLog:  "contract failure",
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			code, log := ABCIInfo(tc.err, tc.debug)
			if code != tc.wantCode {
				t.Errorf("want %d code, got %d", tc.wantCode, code)
			}
			// Grouped errors format every member, only the code matters.
			if _, ok := tc.err.(multiErr); ok {
				return
			}
			if log != tc.wantLog {
				t.Errorf("want %q log, got %q", tc.wantLog, log)
			}
		})
	}
}

// contractErr declares its own ABCI code without being registered.
type contractErr struct{}

func (contractErr) ABCICode() uint32 { return 1300 }

func (contractErr) Error() string { return "contract failure" }
