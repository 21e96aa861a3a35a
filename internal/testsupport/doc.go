// Package testsupport provides shared fixtures for snipelabel tests:
// ODT-shaped template archives, fixture images, and pre-validated configs.
package testsupport
