// Package framework contains the domain-independent part of the test harness: running a
// fixed sequence of dependent steps against a live service, and reporting on them.
//
// The general model is:
//
// 1. A suite is an ordered list of Steps. Each Step has a name, an action, and a flag saying
// whether it is critical. A critical step produces something that later steps cannot do
// without (an account, a resource identifier), so if it fails the run stops right there.
// A non-critical failure is counted and the run moves on.
//
// 2. Each step runs with a *T, which is similar to Go's *testing.T: it implements the
// TestingT interface used by the testify assert and require packages, it can fail and stop
// the step immediately, and it captures debug output that is only shown if wanted.
//
// 3. Everything the operator sees goes through a Reporter. The console reporter prints
// colored progress lines; the JSON reporter produces a machine-readable document for CI.
//
// The domain-specific code that knows what is being tested is responsible for providing the
// step actions and for passing data produced by one step to the ones after it.
package framework
