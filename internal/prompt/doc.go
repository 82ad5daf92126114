// Package prompt drives interactive check filling in a terminal. The survey
// backed Driver can be swapped for a scripted one in tests.
package prompt
