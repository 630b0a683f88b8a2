// Package errors provides coded, actionable errors for animate.
//
// Every error carries a code (e.g. "A001") that maps to a registered
// template with a short message, a longer explanation, and a documentation
// URL. Configuration-contract violations, such as a wrapper configured
// without an animation class name, are reported this way at construction
// time rather than surfacing later as runtime misbehaviour.
//
// # Usage
//
//	err := errors.New("A001").
//	    WithField("animationClassName").
//	    WithSuggestion(`Pass an animation class, e.g. "animationClassName": "flash"`)
//
//	fmt.Println(err.Format())
//	// Output:
//	// ERROR A001: Missing animation class name
//	//
//	//   field: animationClassName
//	//   ...
//
// Codes compare with errors.Is:
//
//	if errors.Is(err, errors.New("A001")) { ... }
package errors
