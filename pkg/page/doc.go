// Package page owns the lifecycle of settings pages.
//
// A Registry maps each Category to a Builder. The first Show of a category
// runs its builder, which loads the page's UI description, wires its
// controls and starts any background refresh; the result is cached, so
// later Shows only switch the visible child of the Host. A failed build is
// logged, nothing is cached, and the next Show tries again.
//
// ListController is the generic refresh loop behind every list page: an
// asynchronous scan on the worker pool, at most one scan in flight per
// page, a single recurring timer, and a clear-and-repopulate of the list on
// the UI thread. Toggle drives switches whose commands may fail, reverting
// the control when they do.
//
// Everything in this package except the scans themselves runs on the UI
// thread.
package page
