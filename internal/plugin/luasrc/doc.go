// Package luasrc loads snippet definitions from Lua scripts.
//
// A snippet script returns an array of tables, each with trigger,
// template and optional description fields:
//
//	return {
//	  { trigger = "sig", template = "Regards,\nD", description = "Signature" },
//	  { trigger = "hr",  template = "---" },
//	}
//
// Scripts are pure definition files: they run once per (re)load in a
// fresh Lua state and can compute their entries however they like, but
// they have no access to the document, the matcher or the placeholder
// set. Definition order in the returned array is preserved, since the
// matcher is order-sensitive.
package luasrc
