// Package gip ties the site configuration, the batch-system registry and
// the CE/SE list builders together behind one Service handle.  Its central
// Service type loads the INI configuration, sets up logging, picks the
// command runner (real schedulers, or canned output under GIP_TESTING) and
// exposes the queries the command-line front end needs.
package gip
