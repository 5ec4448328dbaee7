package heirloom

import (
	"testing"

	"github.com/iov-one/heirloom/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingMsg struct {
	Value string
}

func (pingMsg) Path() string    { return "test/ping" }
func (pingMsg) Validate() error { return nil }

type pongMsg struct{}

func (pongMsg) Path() string    { return "test/pong" }
func (pongMsg) Validate() error { return nil }

type msgTx struct {
	msg Msg
	err error
}

func (t msgTx) GetMsg() (Msg, error) { return t.msg, t.err }

func TestLoadMsg(t *testing.T) {
	var got pingMsg
	require.NoError(t, LoadMsg(msgTx{msg: &pingMsg{Value: "a"}}, &got))
	assert.Equal(t, "a", got.Value)

	require.NoError(t, LoadMsg(msgTx{msg: pingMsg{Value: "b"}}, &got))
	assert.Equal(t, "b", got.Value)

	err := LoadMsg(msgTx{msg: &pongMsg{}}, &got)
	assert.True(t, errors.ErrType.Is(err))

	err = LoadMsg(msgTx{}, &got)
	assert.True(t, errors.ErrMsg.Is(err))

	err = LoadMsg(msgTx{err: errors.ErrInput}, &got)
	assert.True(t, errors.ErrInput.Is(err))

	err = LoadMsg(msgTx{msg: &pingMsg{}}, got)
	assert.True(t, errors.ErrHuman.Is(err))
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "test/ping", GetPath(msgTx{msg: pingMsg{}}))
	assert.Equal(t, "(missing)", GetPath(msgTx{}))
}
