// Package vtest provides testing helpers for code that builds vdom trees.
//
// # Render Assertions
//
// Assert on rendered HTML output:
//
//	vtest.ExpectContains(t, view(), "Welcome Admin")
//	vtest.ExpectNotContains(t, view(), "Login")
//	vtest.ExpectAttribute(t, view(), "class", "btn-primary")
//
// # Diff Assertions
//
// Pin the exact patches an update produces, or check that they apply
// cleanly through the reference document:
//
//	vtest.ExpectPatches(t, before, after,
//	    "AddAttributes <button> at [1] attrs=disabled",
//	)
//	vtest.ExpectRoundTrip(t, before, after)
package vtest
