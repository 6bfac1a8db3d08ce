// seehuhn.de/go/label - load and lay out packaged label documents
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
)

const cliVariables = `<EuroPlus.NiceLabel>
  <Variables>
    <Item Type="Variable"><Id>v1</Id><Name>Weight</Name></Item>
    <Item Type="Variable"><Id>v2</Id><Name>Price</Name></Item>
  </Variables>
  <Functions>
    <Item Type="ConcatenateFunction">
      <Id>f1</Id><Name>Line</Name><Separator>IA==</Separator>
      <DataValues>
        <Item><DataSourceReference><Id>Weight</Id></DataSourceReference></Item>
        <Item><DataSourceReference><Id>Price</Id></DataSourceReference></Item>
      </DataValues>
    </Item>
    <Item Type="ConcatenateFunction">
      <Id>f2</Id><Name>Loop</Name>
      <DataValues>
        <Item><DataSourceReference><Id>f2</Id></DataSourceReference></Item>
      </DataValues>
    </Item>
  </Functions>
</EuroPlus.NiceLabel>`

const cliFormat = `<EuroPlus.NiceLabel>
  <Media><Width>50800</Width><Height>25400</Height></Media>
  <DocumentDesign><Items>
    <Item Type="TextDocumentItem">
      <Id>t1</Id><Name>Title</Name>
      <DataSourceReference><Id>Line</Id></DataSourceReference>
    </Item>
    <Item Type="BarcodeDocumentItem"><Id>b1</Id><FixedContents>123</FixedContents></Item>
  </Items></DocumentDesign>
</EuroPlus.NiceLabel>`

// setupLabel writes a label file and a configuration file, and returns the
// arguments needed to use them.
func setupLabel(t *testing.T, variables string) (string, []string) {
	t.Helper()
	dir := t.TempDir()

	buf := &bytes.Buffer{}
	w := zip.NewWriter(buf)
	for name, body := range map[string]string{
		"shelf.slnx": variables,
		"Formats/1":  cliFormat,
	} {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		fw.Write([]byte(body))
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	labelPath := filepath.Join(dir, "shelf.nlbl")
	if err := os.WriteFile(labelPath, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	cfgPath := filepath.Join(dir, "labeltool.toml")
	if err := os.WriteFile(cfgPath, []byte("[log]\nlevel = \"error\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return labelPath, []string{"--config", cfgPath}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestInfo(t *testing.T) {
	path, flags := setupLabel(t, cliVariables)
	out, err := run(t, append([]string{"info", path}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"50.8 x 25.4 mm", "variables", "barcode"} {
		if !strings.Contains(out, want) {
			t.Errorf("output does not contain %q:\n%s", want, out)
		}
	}
}

func TestResolve(t *testing.T) {
	path, flags := setupLabel(t, cliVariables)

	out, err := run(t, append([]string{"resolve", path}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"1.5 lbs $9.99"`) {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, append([]string{"resolve", path, "Line", "--set", "Price=$1"}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"1.5 lbs $1"`) {
		t.Errorf("unexpected output:\n%s", out)
	}

	_, err = run(t, append([]string{"resolve", path, "--set", "Price"}, flags...)...)
	if err == nil {
		t.Error("missing error for invalid assignment")
	}
}

func TestVarsExport(t *testing.T) {
	path, flags := setupLabel(t, cliVariables)
	out, err := run(t, append([]string{"vars", path, "-f", "toml"}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "Weight = '1.5 lbs'") && !strings.Contains(out, `Weight = "1.5 lbs"`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestLayout(t *testing.T) {
	path, flags := setupLabel(t, cliVariables)
	out, err := run(t, append([]string{"layout", path}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "b1") || !strings.Contains(out, "t1") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if !strings.Contains(out, "(   0.00,   0.00)-( 100.00,  50.00)") {
		t.Errorf("unexpected barcode box:\n%s", out)
	}

	out, err = run(t, append([]string{"layout", path, "--points"}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "(   0.00,   0.00)-(  75.00,  37.50)") {
		t.Errorf("unexpected barcode box in points:\n%s", out)
	}
}

const cliScriptVariables = `<EuroPlus.NiceLabel>
  <Variables>
    <Item Type="Variable"><Id>v1</Id><Name>Weight</Name></Item>
  </Variables>
  <Functions>
    <Item Type="ExecuteScriptFunction">
      <Id>f1</Id><Name>Up</Name>
      <Script>JHt1cHBlcihXZWlnaHQpfQ==</Script>
      <InputDataSourceReferences><Item><Id>v1</Id></Item></InputDataSourceReferences>
    </Item>
  </Functions>
</EuroPlus.NiceLabel>`

func TestNoScripts(t *testing.T) {
	path, flags := setupLabel(t, cliScriptVariables)

	out, err := run(t, append([]string{"resolve", path, "Up"}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `"1.5 LBS"`) {
		t.Errorf("unexpected output:\n%s", out)
	}

	out, err = run(t, append([]string{"resolve", path, "Up", "--no-scripts"}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, `Up = "Up"`) {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestCheck(t *testing.T) {
	path, flags := setupLabel(t, cliVariables)
	out, err := run(t, append([]string{"check", path}, flags...)...)
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != ExitProblems {
		t.Fatalf("got error %v", err)
	}
	if !strings.Contains(out, "f2") {
		t.Errorf("cycle not reported:\n%s", out)
	}
}

func TestInspect(t *testing.T) {
	path, flags := setupLabel(t, cliVariables)
	out, err := run(t, append([]string{"inspect", path, "Lin"}, flags...)...)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "missing") || !strings.Contains(out, "Line [f1], distance 1") {
		t.Errorf("unexpected output:\n%s", out)
	}
}
