package diagnostic

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostics_Collect(t *testing.T) {
	var d Diagnostics

	d.AddInfo("route_template_skipped", "empty template", "route", "page1")
	d.AddWarning("unknown_package_page", "page not found", "partition", "pgae2", "page2")

	assert.True(t, d.IsValid())
	assert.NoError(t, d.Error())
	assert.True(t, d.HasCode("unknown_package_page"))
	assert.False(t, d.HasCode("nope"))

	all := d.All()
	assert.Len(t, all, 2)
	assert.Equal(t, DiagnosticWarning, all[0].Severity)
	assert.Equal(t,
		"[partition] pgae2: [unknown_package_page] page not found (did you mean page2?)",
		all[0].String())
}

func TestDiagnostics_Error(t *testing.T) {
	var d Diagnostics

	d.AddError("a", "first", "", "")
	d.AddError("b", "second", "assemble", "")

	var other Diagnostics
	other.AddInfo("c", "info", "", "")
	d.Merge(other)

	assert.True(t, d.HasErrors())
	assert.EqualError(t, d.Error(), "[a] first; [assemble]: [b] second")
	assert.Len(t, d.Infos, 1)
	assert.Equal(t, "unknown", DiagnosticSeverity(9).String())
}
