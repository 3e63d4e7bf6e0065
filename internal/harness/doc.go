// Package harness provides conformance testing for UI documents.
//
// A scenario is a YAML file naming a document, actions to dispatch,
// and assertions on the final state and the recorded trace. The
// harness wires a real store, navigation queue, dispatcher, and an
// in-memory trace journal keyed by the scenario's session token, so a
// scenario exercises the same paths a host does; only the rendering
// surface is replaced with a recorder. After the actions run, the
// journal read-back is appended to the trace as
// "journal seq kind subject=detail" lines.
//
// # Scenario Format
//
//	name: counter_increment
//	description: "set() updates state and watchers observe it"
//	document: |
//	  app:
//	    initial_screen: home
//	  state:
//	    count: 0
//	  screens:
//	    home:
//	      title: Home
//	    settings:
//	      title: Settings
//	seed:
//	  count: "5"
//	actions:
//	  - set(count, {{ count + 1 }})
//	  - push(settings)
//	assertions:
//	  state:
//	    count: "6"
//	  trace:
//	    - state count=6
//	    - nav push:settings
//	    - 'journal 1 action set=count, {{ count + 1 }}'
//	    - journal 2 state count=6
//	    - journal 3 action push=settings
//	    - journal 4 nav push=settings
//
// # Deterministic Testing
//
// Scenarios run with a fixed session token, and trace lines never
// include timestamps, so traces are identical across runs and can be
// compared against golden files with the -update flag.
package harness
