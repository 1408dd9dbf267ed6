// Package scaffold lays out a Unity project from a configuration. It powers
// the "initium init" command: base folders under Assets, the selected
// scripts folders with one assembly definition each, the selected audio
// folders and a master audio mixer.
//
// Every stage only creates what is missing and never overwrites, so running
// the pipeline twice leaves the tree unchanged. Stages log their failures
// and the pipeline carries on.
package scaffold
