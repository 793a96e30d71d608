// Package devserver serves the build output during development and tells
// connected pages to reload after every rebuild.
//
// Static files come from the dev server descriptor's content base. Pages
// loaded with the live-reload client entry connect to the websocket
// endpoint at /__livereload; Notify sends each of them a "reload" message.
package devserver
