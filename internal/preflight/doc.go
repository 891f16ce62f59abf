// Package preflight bundles the environment checks the doctor command runs:
// external tool availability and directory permissions.
package preflight
