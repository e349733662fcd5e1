package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_PreservesCode(t *testing.T) {
	base := DataLoad(fmt.Errorf("open cars.csv: no such file or directory"))
	wrapped := Wrap(base, "pipeline failed")

	assert.Equal(t, CodeDataLoad, GetCode(wrapped))
	assert.Equal(t, "pipeline failed: failed to load dataset: open cars.csv: no such file or directory", wrapped.Error())
	assert.True(t, IsAppError(wrapped))
}

func TestWrap_PlainErrorIsInternal(t *testing.T) {
	wrapped := Wrapf(stderrors.New("boom"), "stage %s", "encode")
	assert.Equal(t, CodeInternalError, GetCode(wrapped))
	assert.Equal(t, "stage encode: boom", wrapped.Error())
	assert.Nil(t, Wrap(nil, "ignored"))
}

func TestWithCode_UnwrapsToCause(t *testing.T) {
	sentinel := stderrors.New("sentinel")
	err := WithCode(CodeMissingColumn, "cleaning failed", sentinel)

	assert.Equal(t, CodeMissingColumn, GetCode(err))
	assert.True(t, stderrors.Is(err, sentinel))
	assert.Equal(t, "UNKNOWN", GetCode(sentinel))
}
