// Package config provides the build options schema, parsing, defaults,
// validation and typed page options.
//
// The options file is YAML (JSON files are accepted and compacted before
// parsing). Sections whose order matters keep file order:
//
//	origin: https://test.miniprogram.com
//	entry: /
//	router:
//	  page1: /a
//	  page4: [/d/:id, /detail/:id]
//	redirect:
//	  notFound: webview
//	generate:
//	  subpackages:
//	    package1: [page2]
//	    package2: [page3, page4]
//	  preloadRule:
//	    page2: {network: all, packages: [package2]}
//	  appWxss: display
//	  afterOptimizations: true
//	app: {navigationBarTitleText: demo}
//	global: {backgroundColor: "#fff"}
//	pages:
//	  page1: {pullDownRefresh: true}
//	projectConfig: {appid: wx123}
//
// # Ordering
//
// Router entries are compiled and tried in declaration order. Subpackages are
// partitioned in declaration order, so an asset that two packages could
// claim goes to the one declared first.
//
// # Templates
//
// Router values may be a single template or a list. Entries that are not
// strings (numbers, maps, null) are kept here and skipped by the route
// compiler.
package config
