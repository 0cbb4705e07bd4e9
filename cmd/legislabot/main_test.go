package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const billText = `LEY DE MOVILIDAD SUSTENTABLE

EXPOSICIÓN DE MOTIVOS

El transporte público concentra la mayoría de los viajes urbanos.

PROPUESTA

Artículo ÚNICO. Se crea el programa de movilidad sustentable.

Ciudad de México, a 15 de abril de 2024, Dip. Ana López`

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	exportFormat, exportOut = "txt", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestValidateCommand(t *testing.T) {
	out, err := execute(t, billText, "validate", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "ok")

	out, err = execute(t, "sin estructura", "validate", "-")
	require.Error(t, err)
	assert.Contains(t, out, "EXPOSICIÓN DE MOTIVOS")
}

func TestExportCommand(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "bill.txt")
	require.NoError(t, os.WriteFile(src, []byte(billText), 0o644))

	dst := filepath.Join(dir, "bill.html")
	_, err := execute(t, "", "export", src, "--format", "html", "-o", dst)
	require.NoError(t, err)

	body, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Contains(t, string(body), "<h1>LEY DE MOVILIDAD SUSTENTABLE</h1>")

	_, err = execute(t, "", "export", src, "--format", "pdf", "-o", dst)
	assert.Error(t, err)
}
