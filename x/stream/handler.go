package stream

import (
	weave "github.com/iov-one/vesting"
	"github.com/iov-one/vesting/app"
	"github.com/iov-one/vesting/errors"
	"github.com/iov-one/vesting/orm"
	"github.com/iov-one/vesting/x"
	"github.com/iov-one/vesting/x/utils"
)

const (
	createStreamCost  int64 = 300
	refuelStreamCost  int64 = 100
	withdrawCost      int64 = 50
	refundCost        int64 = 50
	updateDetailsCost int64 = 200
)

// RegisterRoutes will instantiate and register all handlers in this
// package. Every handler is wrapped so that it is logged, recovers from
// panics and does not leave partial writes behind on failure.
func RegisterRoutes(r weave.Registry, auth x.Authenticator, ctrl *Controller) {
	chain := app.ChainDecorators(
		utils.NewLogging(),
		utils.NewRecovery(),
		utils.NewSavepoint().OnDeliver(),
	)
	r.Handle(pathCreateMsg, chain.WithHandler(CreateHandler{auth: auth, ctrl: ctrl}))
	r.Handle(pathRefuelMsg, chain.WithHandler(RefuelHandler{auth: auth, ctrl: ctrl}))
	r.Handle(pathWithdrawMsg, chain.WithHandler(WithdrawHandler{auth: auth, ctrl: ctrl}))
	r.Handle(pathRefundMsg, chain.WithHandler(RefundHandler{auth: auth, ctrl: ctrl}))
	r.Handle(pathUpdateDetailsMsg, chain.WithHandler(UpdateDetailsHandler{auth: auth, ctrl: ctrl}))
}

// caller returns the address of the main signer of the transaction.
func caller(ctx weave.Context, auth x.Authenticator) (weave.Address, error) {
	signer := x.MainSigner(ctx, auth)
	if signer == nil {
		return nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	return signer.Address(), nil
}

func amountData(amount uint64) []byte {
	return orm.EncodeSequence(amount)
}

// CreateHandler opens new streams.
type CreateHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = CreateHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h CreateHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	if _, _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: createStreamCost}, nil
}

// Deliver creates the stream and returns its id as the result data.
func (h CreateHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	msg, sender, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	id, err := h.ctrl.Create(ctx, db, sender, msg.Recipient, msg.Amount, *msg.Timeframe, msg.PaymentPerBlock)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: StreamID(id)}, nil
}

func (h CreateHandler) validate(ctx weave.Context, tx weave.Tx) (*CreateMsg, weave.Address, error) {
	var msg CreateMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, nil, errors.Wrap(err, "load msg")
	}
	sender, err := caller(ctx, h.auth)
	if err != nil {
		return nil, nil, err
	}
	return &msg, sender, nil
}

// RefuelHandler adds funds to streams.
type RefuelHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = RefuelHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RefuelHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg RefuelMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := caller(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: refuelStreamCost}, nil
}

// Deliver refuels the stream and returns the added amount.
func (h RefuelHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg RefuelMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	who, err := caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	amount, err := h.ctrl.Refuel(ctx, db, msg.StreamID, msg.Amount, who)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: amountData(amount)}, nil
}

// WithdrawHandler releases vested funds.
type WithdrawHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = WithdrawHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h WithdrawHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg WithdrawMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := caller(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: withdrawCost}, nil
}

// Deliver withdraws and returns the released amount.
func (h WithdrawHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg WithdrawMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	who, err := caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	amount, err := h.ctrl.Withdraw(ctx, db, msg.StreamID, who)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: amountData(amount)}, nil
}

// RefundHandler returns unvested funds of finished streams.
type RefundHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = RefundHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h RefundHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg RefundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := caller(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: refundCost}, nil
}

// Deliver refunds and returns the released amount.
func (h RefundHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg RefundMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	who, err := caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	amount, err := h.ctrl.Refund(ctx, db, msg.StreamID, who)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: amountData(amount)}, nil
}

// UpdateDetailsHandler applies terms co-signed by both parties.
type UpdateDetailsHandler struct {
	auth x.Authenticator
	ctrl *Controller
}

var _ weave.Handler = UpdateDetailsHandler{}

// Check just verifies it is properly formed and returns
// the cost of executing it.
func (h UpdateDetailsHandler) Check(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.CheckResult, error) {
	var msg UpdateDetailsMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if _, err := caller(ctx, h.auth); err != nil {
		return nil, err
	}
	return &weave.CheckResult{GasAllocated: updateDetailsCost}, nil
}

// Deliver updates the stream terms.
func (h UpdateDetailsHandler) Deliver(ctx weave.Context, db weave.KVStore, tx weave.Tx) (*weave.DeliverResult, error) {
	var msg UpdateDetailsMsg
	if err := weave.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	who, err := caller(ctx, h.auth)
	if err != nil {
		return nil, err
	}
	err = h.ctrl.UpdateDetails(ctx, db, msg.StreamID, msg.PaymentPerBlock, *msg.Timeframe, msg.Signer, msg.Signature, who)
	if err != nil {
		return nil, err
	}
	return &weave.DeliverResult{Data: []byte{1}}, nil
}
