package assemble

import "mp-generator/internal/gen"

// WebviewPage returns the synthetic page that opens a URL in a web-view.
// The target URL arrives URI-encoded in the url query parameter.
func WebviewPage() []gen.GeneratedFile {
	return []gen.GeneratedFile{
		{
			Filename: WebviewRoute + gen.ExtScript,
			Content:  []byte(`Page({data:{url:''},onLoad: function(query){this.setData({url:decodeURIComponent(query.url)})}})`),
		},
		{Filename: WebviewRoute + gen.ExtMarkup, Content: []byte(`<web-view src="{{url}}"></web-view>`)},
		{Filename: WebviewRoute + gen.ExtStyle, Content: []byte{}},
		{Filename: WebviewRoute + gen.ExtManifest, Content: []byte(`{"usingComponents":{}}`)},
	}
}
