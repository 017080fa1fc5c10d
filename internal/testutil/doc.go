// Package testutil provides shared test fixtures for building CI artifact
// trees on disk.
//
// A harness owns a temporary artifacts directory laid out the way the CI
// download step leaves it:
//
//	<root>/<job>-logs/<step>.log
//
// Tests add step logs and job conclusions, then point the generator at
// h.Root:
//
//	h := testutil.NewArtifactsHarness(t)
//	h.AddStep("build", "3_Build", "/src/a.swift:1:1: error: boom")
//	h.SetResult("build", "failure")
package testutil
