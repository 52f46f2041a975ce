package pdf

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
	"github.com/BruceY-rgb/bank-kyc/internal/core/ports/driven"
	"github.com/BruceY-rgb/bank-kyc/internal/logger"
)

// mockRunner is a test double for CommandRunner.
type mockRunner struct {
	output []byte
	err    error
}

func (m *mockRunner) Run(_ context.Context, _ string, _ ...string) ([]byte, error) {
	return m.output, m.err
}

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestInterfaceCompliance(t *testing.T) {
	var _ driven.Normaliser = (*Normaliser)(nil)
}

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	require.Len(t, mimeTypes, 1)
	assert.Contains(t, mimeTypes, "application/pdf")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_WithExtraction(t *testing.T) {
	normaliser := NewWithRunner(&mockRunner{
		output: []byte("Business Licence\n\nRegistered capital: 10,000,000\n"),
	})

	raw := &domain.RawDocument{
		DossierID: "dossier-1",
		URI:       "/inbox/business_licence.pdf",
		MIMEType:  "application/pdf",
		SizeBytes: 204800,
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)

	doc := result.Document
	assert.Equal(t, domain.KindPDF, doc.Kind)
	assert.Equal(t, "Business Licence", doc.Title)
	assert.Contains(t, doc.Content, "Registered capital")
	assert.Equal(t, true, doc.Metadata["text_extracted"])
}

func TestNormalise_ExtractionFails(t *testing.T) {
	normaliser := NewWithRunner(&mockRunner{
		err: errors.New("exec: pdftotext: executable file not found"),
	})

	raw := &domain.RawDocument{
		DossierID: "dossier-1",
		URI:       "/inbox/credit_report.pdf",
		MIMEType:  "application/pdf",
		SizeBytes: 1 << 20,
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err, "extraction failure must not fail cataloguing")

	doc := result.Document
	assert.False(t, doc.HasContent())
	assert.Equal(t, "credit report", doc.Title)
	assert.Equal(t, false, doc.Metadata["text_extracted"])
}

func TestNormalise_MissingBinaryLogsInstallHint(t *testing.T) {
	var buf bytes.Buffer
	logger.SetVerbose(true)
	logger.SetOutput(&buf)
	defer func() {
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	}()

	normaliser := NewWithRunner(&mockRunner{
		err: &exec.Error{Name: "pdftotext", Err: exec.ErrNotFound},
	})

	raw := &domain.RawDocument{
		DossierID: "dossier-1",
		URI:       "/inbox/passport.pdf",
		MIMEType:  "application/pdf",
		SizeBytes: 2048,
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.False(t, result.Document.HasContent())
	assert.Contains(t, buf.String(), "brew install poppler")

	// The hint is logged once; later failures stay quiet.
	buf.Reset()
	_, err = normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "brew install poppler")
}

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		uri      string
		expected string
	}{
		{
			name:     "first line as title",
			content:  "Audit Report 2025\n\nPrepared by ...",
			uri:      "/doc.pdf",
			expected: "Audit Report 2025",
		},
		{
			name:     "skip empty lines",
			content:  "\n\n\nActual Title\nContent",
			uri:      "/doc.pdf",
			expected: "Actual Title",
		},
		{
			name:     "fallback to filename",
			content:  "",
			uri:      "/path/to/my_document.pdf",
			expected: "my document",
		},
		{
			name:     "skip very long first line",
			content:  string(make([]byte, 250)) + "\nShort Title\nContent",
			uri:      "/doc.pdf",
			expected: "Short Title",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, extractTitle(tc.content, tc.uri))
		})
	}
}

func TestInstallInstructions(t *testing.T) {
	instructions := InstallInstructions()
	assert.Contains(t, instructions, "pdftotext")
	assert.Contains(t, instructions, "brew install poppler")
	assert.Contains(t, instructions, "apt install poppler-utils")
}
