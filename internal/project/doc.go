// Package project models the host side of a build: a project directory, the
// platform identifiers detected from its build files, the extensions that
// language support registers on it, and the tasks plugins expose.
package project
