// Package registry fetches project dependencies. It talks to an npm-style
// package registry (the protocol Unity scoped registries speak), records
// installed packages in Packages/manifest.json, imports .unitypackage
// archives, and exposes every registry call as an asynchronous Request that
// a Tracker polls to completion.
package registry
