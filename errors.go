package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// failureKind tags the terminal outcome of a failed job. Classification is
// by explicit variant, never by error-type ordering.
type failureKind string

const (
	failValidation      failureKind = "validation"
	failExtraction      failureKind = "extraction"
	failArtifactMissing failureKind = "artifact_missing"
	failUnexpected      failureKind = "unexpected"
)

// User-facing messages, kept in the service's original locale.
const (
	msgMissingURL      = "URL do vídeo não fornecida"
	msgInvalidBody     = "Corpo da requisição inválido"
	msgArtifactMissing = "Arquivo de vídeo não encontrado após o download."
	msgUnexpected      = "Ocorreu um erro inesperado no servidor."
	msgServerBusy      = "Servidor ocupado, tente novamente mais tarde."
)

type pipelineError struct {
	Kind failureKind
	Err  error
}

func (e *pipelineError) Error() string { return e.Err.Error() }
func (e *pipelineError) Unwrap() error { return e.Err }

func extractionError(format string, a ...any) *pipelineError {
	return &pipelineError{Kind: failExtraction, Err: fmt.Errorf(format, a...)}
}

func artifactMissingError(format string, a ...any) *pipelineError {
	return &pipelineError{Kind: failArtifactMissing, Err: fmt.Errorf(format, a...)}
}

func unexpectedError(format string, a ...any) *pipelineError {
	return &pipelineError{Kind: failUnexpected, Err: fmt.Errorf(format, a...)}
}

// classify maps any error from any stage to its failure kind. Untagged
// errors are unexpected by definition.
func classify(err error) failureKind {
	var pe *pipelineError
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return failUnexpected
}

func statusCode(kind failureKind) int {
	if kind == failValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// userMessage renders the response body for a failure. Unexpected failures
// get a generic message; the detail stays in server-side logs only.
func userMessage(kind failureKind, detail string) string {
	switch kind {
	case failValidation:
		return msgMissingURL
	case failExtraction:
		return "Erro ao baixar o vídeo: " + detail
	case failArtifactMissing:
		return msgArtifactMissing
	default:
		return msgUnexpected
	}
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
