// Package session holds the signed-in state of the client and the
// transitions that change it.
//
// A Context is created once per process, started with Start (which
// rebuilds the state from stored credentials) and released with Close.
// Every transition raises IsLoading on entry and lowers it on every exit
// path. Observers registered with Subscribe receive a copy of the state
// after each change.
package session
