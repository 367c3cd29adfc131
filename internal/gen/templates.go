package gen

import "text/template"

// Lifecycle forwarding handlers, emitted verbatim into the page object.
const (
	pageScrollFunction      = `onPageScroll({ scrollTop }) {if (this.window) {this.window.document.documentElement.scrollTop = scrollTop || 0;this.window.$$trigger('scroll');}},`
	reachBottomFunction     = `onReachBottom() {if (this.window) {this.window.$$trigger('reachbottom');}},`
	pullDownRefreshFunction = `onPullDownRefresh() {if (this.window) {this.window.$$trigger('pulldownrefresh');}},`
)

// PageMarkup is the markup of every page.
const PageMarkup = `<element wx:if="{{pageId}}" class="{{bodyClass}}" style="{{bodyStyle}}" data-private-node-id="e-body" data-private-page-id="{{pageId}}"></element>`

// pageData feeds pageTemplate.
type pageData struct {
	ConfigPath string
	Requires   []string
	Handlers   []string
}

var pageTemplate = template.Must(template.New("page").Parse(`const mp = require('miniprogram-render')
const config = require('{{.ConfigPath}}')

function init(window, document) {{"{"}}{{range $i, $r := .Requires}}{{if $i}};{{end}}require('{{$r}}')(window, document){{end}}{{"}"}}

Page({
	data: {
		pageId: '',
		bodyClass: 'h5-body miniprogram-root',
		bodyStyle: '',
	},
	onLoad(query) {
		const {pageId, window, document} = mp.createPage(this.route, config)
		this.pageId = pageId
		this.window = window
		this.document = document
		this.query = query
		init(window, document)
		this.setData({pageId: this.pageId})
		this.app = this.window.createApp()
		this.window.$$trigger('load')
		this.window.$$trigger('wxload', {event: query})
	},
	onShow() {
		this.window.$$trigger('wxshow')
	},
	onReady() {
		this.window.$$trigger('wxready')
	},
	onHide() {
		this.window.$$trigger('wxhide')
	},
	onUnload() {
		this.window.$$trigger('beforeunload')
		this.window.$$trigger('wxunload')
		if (this.app && this.app.$destroy) this.app.$destroy()
		this.document.body.$$recycle()
		mp.destroyPage(this.pageId)
		this.pageId = null
		this.window = null
		this.document = null
		this.app = null
		this.query = null
	},
{{- range .Handlers}}
	{{.}}
{{- end}}
})
`))
