package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lkoehler/ladeplan/internal/common"
)

func TestPDFExtractor_CorruptInput(t *testing.T) {
	e := NewPDFExtractor(nil)

	pages, err := e.Extract(context.Background(), []byte("this is not a pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnreadablePDF)
	assert.Nil(t, pages, "no partial result on unreadable input")
}

func TestPDFExtractor_EmptyInput(t *testing.T) {
	e := NewPDFExtractor(nil)

	_, err := e.Extract(context.Background(), nil)
	assert.ErrorIs(t, err, common.ErrUnreadablePDF)
}
