package registry

import (
	"errors"
	"fmt"

	"github.com/joshuapare/regkit/pkg/types"
)

// Operation names carried in types.Error.Op.
const (
	opOpen      = "open key"
	opCreate    = "create key"
	opClose     = "close key"
	opDelete    = "delete key"
	opQueryKey  = "query key"
	opEnumerate = "enumerate key"
	opForEach   = "enumerate subkeys"
	opQuery     = "query value"
	opSet       = "set value"
	opDelValue  = "delete value"
)

// storeError wraps a failed primitive. The Status is kept in the error; any
// cause that is not itself a Status is chained for errors.Is/As.
func storeError(op, name string, err error, msg string) *types.Error {
	e := &types.Error{
		Kind:   types.ErrKindStore,
		Op:     op,
		Name:   name,
		Status: types.AsStatus(err),
		Msg:    msg,
	}
	var st types.Status
	if !errors.As(err, &st) {
		e.Err = err
	}
	return e
}

func notFoundError(op, name string, st types.Status) *types.Error {
	return &types.Error{Kind: types.ErrKindNotFound, Op: op, Name: name, Status: st, Msg: "not found"}
}

func resourceError(op, name string, n uint32, err error) *types.Error {
	return &types.Error{
		Kind:   types.ErrKindResource,
		Op:     op,
		Name:   name,
		Status: types.StatusInsufficientResources,
		Msg:    fmt.Sprintf("could not allocate %d bytes", n),
		Err:    err,
	}
}

func formatError(op, name string, err error) *types.Error {
	return &types.Error{Kind: types.ErrKindFormat, Op: op, Name: name, Msg: "malformed information block", Err: err}
}

func closedError(op, name string) *types.Error {
	return &types.Error{Kind: types.ErrKindState, Op: op, Name: name, Msg: "key is closed"}
}

func limitError(op, name, msg string) *types.Error {
	return &types.Error{Kind: types.ErrKindLimit, Op: op, Name: name, Msg: msg}
}

func invalidError(op, name string, err error) *types.Error {
	return &types.Error{Kind: types.ErrKindInvalid, Op: op, Name: name, Msg: "invalid argument", Err: err}
}
