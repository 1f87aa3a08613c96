package fault

import (
	"fmt"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf_Plain(t *testing.T) {
	err := fmt.Errorf("boom")
	assert.Equal(t, CodeInternal, CodeOf(err))
}

func TestCodeOf_Direct(t *testing.T) {
	err := New(CodeNotFound, "user not found")
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeInvalidInput))
}

func TestWrap_PreservesCodeThroughEris(t *testing.T) {
	inner := New(CodeUpstream, "geocode request failed")
	wrapped := eris.Wrap(inner, "reconcile: forward lookup")
	assert.True(t, Is(wrapped, CodeUpstream))
}

func TestWrap_Nil(t *testing.T) {
	assert.NoError(t, Wrap(CodeUpstream, nil, "ignored"))
}

func TestWrap_Cause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(CodeUpstream, cause, "geocode: search")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.Contains(t, err.Error(), "geocode: search")
	assert.Equal(t, CodeUpstream, CodeOf(err))
}

func TestNewf(t *testing.T) {
	err := Newf(CodeNotFound, "region %s not found", "abc")
	assert.Equal(t, "region abc not found", err.Error())
}
