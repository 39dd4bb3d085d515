// Package app provides the page view session layer.
//
// A View is opened for every connected landing page. It owns the review carousel rotator
// and the chart feed of that page, fetches the review sample once, and tears everything
// down when the connection goes away. Depends on domain interfaces, not on transports.
package app
