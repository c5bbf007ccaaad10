package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"realz/internal/usecase"
)

func writeJSON(w io.Writer, vm *usecase.ViewModel) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(vm)
}

func writeText(w io.Writer, vm *usecase.ViewModel) error {
	lines := []string{
		"badge=" + vm.Badge,
		"status=" + vm.Status.Title,
	}
	if vm.Status.Hint != "" {
		lines = append(lines, "status.hint="+vm.Status.Hint)
	}
	lines = append(lines,
		"subtitle="+vm.Subtitle,
		"proof_id="+vm.ProofID,
		"trust="+vm.Details.Trust,
		"captured_at="+vm.Details.CapturedAt,
		"key_id="+vm.Details.KeyID,
	)
	if vm.Thumbnail.Visible {
		lines = append(lines, fmt.Sprintf("thumbnail=%s overlay=%s", vm.Thumbnail.URL, vm.Thumbnail.Overlay))
	}
	if vm.RawDump != "" {
		lines = append(lines, "raw:", vm.RawDump)
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}
