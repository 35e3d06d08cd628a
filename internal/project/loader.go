package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/riscy-lib/rbuild/internal/ctxlog"
)

// fileRoot decodes the top-level blocks of an rbuild.hcl file.
type fileRoot struct {
	Project   *projectBlock   `hcl:"project,block"`
	Toolchain *toolchainBlock `hcl:"toolchain,block"`
}

type projectBlock struct {
	Root    string   `hcl:"root,optional"`
	Top     string   `hcl:"top,optional"`
	Defines []string `hcl:"defines,optional"`
}

type toolchainBlock struct {
	VerilogCmd string `hcl:"verilog_cmd,optional"`
	VHDLCmd    string `hcl:"vhdl_cmd,optional"`
	ElabCmd    string `hcl:"elab_cmd,optional"`
	UVMLib     string `hcl:"uvm_lib,optional"`
}

// Load reads a project file and overlays it on the defaults. A missing file
// is not an error: the defaults are returned so a project without an
// rbuild.hcl still builds.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Default()

	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		logger.Debug("No project file found, using defaults.", "path", path)
		return cfg, nil
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("project: parse %s: %w", path, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, evalContext(), &root); diags.HasErrors() {
		return nil, fmt.Errorf("project: decode %s: %w", path, diags)
	}

	if p := root.Project; p != nil {
		if p.Root != "" {
			cfg.Root = p.Root
		}
		if p.Top != "" {
			cfg.Top = p.Top
		}
		cfg.Defines = append(cfg.Defines, p.Defines...)
	}
	if tc := root.Toolchain; tc != nil {
		if tc.VerilogCmd != "" {
			cfg.Toolchain.VerilogCmd = tc.VerilogCmd
		}
		if tc.VHDLCmd != "" {
			cfg.Toolchain.VHDLCmd = tc.VHDLCmd
		}
		if tc.ElabCmd != "" {
			cfg.Toolchain.ElabCmd = tc.ElabCmd
		}
		if tc.UVMLib != "" {
			cfg.Toolchain.UVMLib = tc.UVMLib
		}
	}

	logger.Debug("Project file loaded.", "path", path, "top", cfg.Top)
	return cfg, nil
}

// evalContext exposes the process environment to config expressions as an
// env object, so attributes can reference values like env.RISCY_DIR.
func evalContext() *hcl.EvalContext {
	vals := make(map[string]cty.Value)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok && k != "" {
			vals[k] = cty.StringVal(v)
		}
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{"env": cty.ObjectVal(vals)},
	}
}
