// compileinfoprint is imported for the side effect of printing the compileinfo
// to os.StdErr, so every merged VCF can be traced back to the binary that
// wrote it.
package compileinfoprint

import "github.com/carbocation/vcfunion/compileinfo"

func init() {
	compileinfo.PrintToStdErr()
}
