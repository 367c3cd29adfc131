package cssadjust

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRewriteSelector(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"body", "page"},
		{"html, body", "page, page"},
		{"div", ".h5-div"},
		{"div > p", ".h5-div > .h5-p"},
		{"ul li a:hover", ".h5-ul .h5-li .h5-a:hover"},
		{".box span", ".box .h5-span"},
		{"#main div.item", "#main .h5-div.item"},
		{"input[type=text]", ".h5-input[type=text]"},
		{"li:nth-child(odd)", ".h5-li:nth-child(odd)"},
		{":not(div)", ":not(.h5-div)"},
		{"page", "page"},
		{"view .x", "view .x"},
		{"H1", ".h5-h1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteSelector(tt.in))
		})
	}
}

func TestRewriteSelectors_Blocks(t *testing.T) {
	in := `body { color: red; }
@media (max-width: 100px) {
  div { content: "a { b }"; }
}
@keyframes spin {
  from { opacity: 0; }
  to { opacity: 1; }
}
@font-face { font-family: x; }
/* span { } */
p::before { content: 'div;'; }
`

	want := `page { color: red; }
@media (max-width: 100px) {
  .h5-div { content: "a { b }"; }
}
@keyframes spin {
  from { opacity: 0; }
  to { opacity: 1; }
}
@font-face { font-family: x; }
/* span { } */
.h5-p::before { content: 'div;'; }
`

	assert.Equal(t, want, RewriteSelectors(in))
}

func TestRewriteSelectors_ImportsUntouched(t *testing.T) {
	in := "@import \"../../common/a.css\";\n@import \"b.wxss\";\n"
	assert.Equal(t, in, RewriteSelectors(in))
}

func TestAdjuster_Transform(t *testing.T) {
	out, err := New().Transform([]byte("body{background:#fff}div>span{color:red}"))
	require.NoError(t, err)

	got := string(out)
	assert.Contains(t, got, "page {")
	assert.Contains(t, got, ".h5-div > .h5-span {")
	assert.NotContains(t, got, "body")
}

func TestAdjuster_TransformEmpty(t *testing.T) {
	out, err := New().Transform([]byte("  \n"))
	require.NoError(t, err)
	assert.Equal(t, "  \n", string(out))
}
