package mcp

import (
	"context"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruceY-rgb/bank-kyc/internal/core/domain"
)

func readRequest(uri string) *mcpsdk.ReadResourceRequest {
	return &mcpsdk.ReadResourceRequest{
		Params: &mcpsdk.ReadResourceParams{URI: uri},
	}
}

func TestServer_handleDossiersResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists registered dossiers", func(t *testing.T) {
		dossiers := &mockDossierService{
			dossiers: []domain.Dossier{
				{ID: "dos-1", Name: "Acme Corp", Path: "/in/acme"},
				{ID: "dos-2", Name: "Globex", Path: "/in/globex"},
			},
		}
		server, err := NewServer(&Ports{Dossier: dossiers, Document: &mockDocumentService{}})
		require.NoError(t, err)

		result, err := server.handleDossiersResource(ctx, readRequest("kyc://dossiers"))

		require.NoError(t, err)
		require.Len(t, result.Contents, 1)
		assert.Equal(t, "application/json", result.Contents[0].MIMEType)
		assert.Contains(t, result.Contents[0].Text, "Acme Corp")
		assert.Contains(t, result.Contents[0].Text, "/in/globex")
	})

	t.Run("empty catalogue returns empty array", func(t *testing.T) {
		server, err := NewServer(&Ports{Dossier: &mockDossierService{}, Document: &mockDocumentService{}})
		require.NoError(t, err)

		result, err := server.handleDossiersResource(ctx, readRequest("kyc://dossiers"))

		require.NoError(t, err)
		assert.Equal(t, "[]", result.Contents[0].Text)
	})
}

func TestServer_handleDocumentsResource(t *testing.T) {
	ctx := context.Background()

	t.Run("lists documents for the dossier", func(t *testing.T) {
		docs := &mockDocumentService{
			documents: []domain.Document{
				{ID: "doc-1", Title: "passport.pdf", URI: "/in/acme/passport.pdf", Kind: domain.KindPDF},
			},
		}
		server, err := NewServer(&Ports{Dossier: &mockDossierService{}, Document: docs})
		require.NoError(t, err)

		result, err := server.handleDocumentsResource(ctx, readRequest("kyc://dossiers/dos-1/documents"))

		require.NoError(t, err)
		assert.Contains(t, result.Contents[0].Text, "passport.pdf")
		assert.Contains(t, result.Contents[0].Text, "doc-1")
	})

	t.Run("malformed URI is not found", func(t *testing.T) {
		server, err := NewServer(&Ports{Dossier: &mockDossierService{}, Document: &mockDocumentService{}})
		require.NoError(t, err)

		_, err = server.handleDocumentsResource(ctx, readRequest("kyc://dossiers/dos-1"))

		assert.Error(t, err)
	})
}

func TestServer_handleDocumentContentResource(t *testing.T) {
	ctx := context.Background()

	t.Run("returns extracted text", func(t *testing.T) {
		docs := &mockDocumentService{content: "account holder: Jane Doe"}
		server, err := NewServer(&Ports{Dossier: &mockDossierService{}, Document: docs})
		require.NoError(t, err)

		result, err := server.handleDocumentContentResource(ctx, readRequest("kyc://documents/doc-1"))

		require.NoError(t, err)
		assert.Equal(t, "text/plain", result.Contents[0].MIMEType)
		assert.Equal(t, "account holder: Jane Doe", result.Contents[0].Text)
	})

	t.Run("binary content propagates as error", func(t *testing.T) {
		docs := &mockDocumentService{err: domain.ErrBinaryContent}
		server, err := NewServer(&Ports{Dossier: &mockDossierService{}, Document: docs})
		require.NoError(t, err)

		_, err = server.handleDocumentContentResource(ctx, readRequest("kyc://documents/doc-1"))

		assert.ErrorIs(t, err, domain.ErrBinaryContent)
	})
}

func TestExtractDossierID(t *testing.T) {
	assert.Equal(t, "dos-1", extractDossierID("kyc://dossiers/dos-1/documents"))
	assert.Empty(t, extractDossierID("kyc://dossiers/dos-1"))
	assert.Empty(t, extractDossierID("other://dossiers/dos-1/documents"))
}

func TestExtractDocumentID(t *testing.T) {
	assert.Equal(t, "doc-1", extractDocumentID("kyc://documents/doc-1"))
	assert.Empty(t, extractDocumentID("kyc://dossiers/doc-1"))
}
