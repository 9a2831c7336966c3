package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soromap/soro-cli/internal/config"
)

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"run", "eda", "export"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Metadata(t *testing.T) {
	assert.Equal(t, "soro-cli", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
}

func TestRootCommand_Flags(t *testing.T) {
	for _, name := range []string{"source", "sheet", "out", "export-dir", "top", "sample"} {
		flag := rootCmd.PersistentFlags().Lookup(name)
		assert.NotNil(t, flag, "root should have --%s flag", name)
	}
	assert.Equal(t, "0", rootCmd.PersistentFlags().Lookup("top").DefValue)
}

func TestRootCmd_PersistentPreRunE_WithValidConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configContent := `
source:
  path: data/centros.xlsx
report:
  top_municipalities: 5
log:
  level: info
  format: console
`
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte(configContent), 0o644))

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(origDir)

	oldCfg := cfg
	cfg = nil
	defer func() { cfg = oldCfg }()

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Equal(t, "data/centros.xlsx", cfg.Source.Path)
	assert.Equal(t, 5, cfg.Report.TopMunicipalities)
	assert.Equal(t, ".database_info", cfg.Output.Dir)
}

func TestRootCmd_PersistentPreRunE_BadLogLevel(t *testing.T) {
	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("log:\n  level: loud\n"), 0o644))

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(origDir)

	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	err := rootCmd.PersistentPreRunE(rootCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "init logger")
}

func TestApplyFlags(t *testing.T) {
	defer func() {
		for _, name := range []string{"source", "sheet", "top"} {
			f := rootCmd.PersistentFlags().Lookup(name)
			f.Changed = false
			_ = f.Value.Set(f.DefValue)
		}
	}()

	require.NoError(t, rootCmd.PersistentFlags().Set("source", "other.csv"))
	require.NoError(t, rootCmd.PersistentFlags().Set("sheet", "2"))
	require.NoError(t, rootCmd.PersistentFlags().Set("top", "7"))

	c := &config.Config{
		Source: config.SourceConfig{Path: "db.xlsx", SheetName: "centros"},
		Output: config.OutputConfig{Dir: ".database_info"},
	}
	applyFlags(rootCmd, c)

	assert.Equal(t, "other.csv", c.Source.Path)
	assert.Equal(t, 2, c.Source.SheetIndex)
	assert.Empty(t, c.Source.SheetName)
	assert.Equal(t, 7, c.Report.TopMunicipalities)
	assert.Equal(t, ".database_info", c.Output.Dir, "unset flags keep config values")

	require.NoError(t, rootCmd.PersistentFlags().Set("sheet", "centros"))
	applyFlags(rootCmd, c)
	assert.Equal(t, "centros", c.Source.SheetName)
}

func TestApplyFlags_FromSubcommand(t *testing.T) {
	defer func() {
		f := rootCmd.PersistentFlags().Lookup("sample")
		f.Changed = false
		_ = f.Value.Set(f.DefValue)
	}()

	require.NoError(t, rootCmd.PersistentFlags().Set("sample", "0"))

	c := &config.Config{Export: config.ExportConfig{SampleSize: 50}}
	applyFlags(exportCmd, c)
	assert.Equal(t, 0, c.Export.SampleSize)
}

func TestRunCommand_EndToEnd(t *testing.T) {
	tmpDir := t.TempDir()
	source := filepath.Join(tmpDir, "antivenom_db.csv")
	csv := strings.Join([]string{
		"Region,FU,Municipio,Unidade de,CNES,Lat (Y),Lon (X)",
		"Nordeste,PE,Recife,Hospital A,123456.0,-8.05,-34.88",
		"Sul,PR,Curitiba,,,-25.43,-49.27",
	}, "\n") + "\n"
	require.NoError(t, os.WriteFile(source, []byte(csv), 0o644))

	outDir := filepath.Join(tmpDir, "eda")
	exportDir := filepath.Join(tmpDir, "public", "data")

	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(tmpDir))
	defer os.Chdir(origDir)

	oldCfg := cfg
	defer func() { cfg = oldCfg }()

	rootCmd.SetArgs([]string{"run", "--source", source, "--out", outDir, "--export-dir", exportDir})
	defer rootCmd.SetArgs(nil)
	require.NoError(t, rootCmd.Execute())

	for _, name := range []string{"summary.json", "by_region.json", "by_state.json", "by_municipality.json", "coordinates_stats.json", "eda_report.md"} {
		_, err := os.Stat(filepath.Join(outDir, name))
		assert.NoError(t, err, name)
	}
	for _, name := range []string{"centros.mock.ts", "centros.json"} {
		_, err := os.Stat(filepath.Join(exportDir, name))
		assert.NoError(t, err, name)
	}
}
