package record

// Map the fixed columns of a VCF data line to their positions
const (
	Chrom int = iota
	Pos
	ID
	Ref
	Alt
	Qual
	Filter
	Info
	Format

	// FixedColumns is the number of columns that precede the first sample.
	FixedColumns
)

// SampleStart is the index of the first sample column in a VCF line.
const SampleStart = FixedColumns

const (
	// Missing is the VCF placeholder for an absent value.
	Missing = "."

	// MissingGenotype is an unphased diploid no-call.
	MissingGenotype = "./."

	// HeaderPrefix starts the column header line.
	HeaderPrefix = "#CHROM"

	// MetaPrefix starts every metadata line above the column header.
	MetaPrefix = "##"
)
