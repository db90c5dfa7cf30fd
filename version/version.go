package version

// Name for this
const Name string = "texgen"

// Version for this
var Version = "dev"

// Revision for this, set at build time with -ldflags
var Revision = "HEAD"
