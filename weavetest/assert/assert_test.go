package assert

import (
	"testing"

	"github.com/iov-one/vesting/errors"
)

func TestAssertions(t *testing.T) {
	var missing *errors.Error

	cases := map[string]struct {
		check    func(Tester)
		wantFail bool
	}{
		"nil": {
			check: func(t Tester) { Nil(t, nil) },
		},
		"typed nil": {
			check: func(t Tester) { Nil(t, missing) },
		},
		"zero number is not nil": {
			check:    func(t Tester) { Nil(t, 0) },
			wantFail: true,
		},
		"error is not nil": {
			check:    func(t Tester) { Nil(t, errors.ErrEmpty) },
			wantFail: true,
		},
		"equal byte slices": {
			check: func(t Tester) { Equal(t, []byte{0, 1}, []byte{0, 1}) },
		},
		"same value of a different type": {
			check:    func(t Tester) { Equal(t, uint64(5), 5) },
			wantFail: true,
		},
		"panic": {
			check: func(t Tester) { Panics(t, func() { panic("corrupted stream") }) },
		},
		"no panic": {
			check:    func(t Tester) { Panics(t, func() {}) },
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			tc.check(mock)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestIsErr(t *testing.T) {
	cases := map[string]struct {
		want     error
		got      error
		wantFail bool
	}{
		"same error": {
			want: errors.ErrUnauthorized,
			got:  errors.ErrUnauthorized,
		},
		"wrapped error": {
			want: errors.ErrUnauthorized,
			got:  errors.Wrap(errors.Wrap(errors.ErrUnauthorized, "only the sender"), "refuel"),
		},
		"different error": {
			want:     errors.ErrUnauthorized,
			got:      errors.ErrNotFound,
			wantFail: true,
		},
		"error expected": {
			want:     errors.ErrUnauthorized,
			got:      nil,
			wantFail: true,
		},
		"no error expected": {
			want:     nil,
			got:      errors.ErrEmpty,
			wantFail: true,
		},
		"both nil": {
			want: nil,
			got:  nil,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			IsErr(mock, tc.want, tc.got)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

func TestFieldError(t *testing.T) {
	recipientErr := errors.Field("Recipient", errors.ErrEmpty, "required")

	cases := map[string]struct {
		err      error
		field    string
		want     *errors.Error
		wantFail bool
	}{
		"single field error": {
			err:   recipientErr,
			field: "Recipient",
			want:  errors.ErrEmpty,
		},
		"field error of another kind": {
			err:      recipientErr,
			field:    "Recipient",
			want:     errors.ErrInput,
			wantFail: true,
		},
		"no error for the field": {
			err:   recipientErr,
			field: "Amount",
			want:  nil,
		},
		"unexpected field error": {
			err:      recipientErr,
			field:    "Recipient",
			want:     nil,
			wantFail: true,
		},
		"missing field error": {
			err:      recipientErr,
			field:    "Amount",
			want:     errors.ErrAmount,
			wantFail: true,
		},
		"two errors for the same field": {
			err: errors.Append(
				recipientErr,
				errors.Field("Recipient", errors.ErrEmpty, "again"),
			),
			field:    "Recipient",
			want:     errors.ErrEmpty,
			wantFail: true,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			mock := &tmock{TB: t}
			FieldError(mock, tc.err, tc.field, tc.want)
			if failed := mock.failcalls > 0; failed != tc.wantFail {
				t.Fatalf("unexpected failed call state: %d failures", mock.failcalls)
			}
		})
	}
}

// tmock counts failures instead of stopping the test.
type tmock struct {
	testing.TB
	failcalls int
}

func (t *tmock) Fatal(args ...interface{}) {
	t.TB.Log(args...)
	t.failcalls++
}

func (t *tmock) Fatalf(s string, args ...interface{}) {
	t.TB.Logf(s, args...)
	t.failcalls++
}
