// Package section decodes and encodes the structured content of ENDF-6
// sections.
//
// A tape stores every (MAT, MF, MT) section as raw text. This package turns
// that text into an explicit Go struct for the MF families it knows, and back:
//
//	MF/MT          | Type              | Content
//	---------------|-------------------|------------------------------------------
//	1/451          | Info              | header flags, description, directory
//	3/*            | CrossSection      | tabulated cross section σ(E)
//	4/*            | AngularDistribution | Legendre and/or tabulated cosine data
//	8/454, 8/459   | FissionYields     | independent/cumulative yields per energy
//	8/457          | DecayData         | half-life, decay modes, spectra
//	31/*, 33/*     | Covariance        | ν̄ and cross-section covariances
//	35/*           | EnergyCovariance  | energy-distribution covariances
//
// ERRORR tapes (multigroup output of the processing tool) lay out MF1 and MF3
// differently; their codecs are registered separately as GroupStructure and
// GroupCrossSection.
//
// # Registry
//
// Codecs are held in a static registry keyed by MF, selected by tape kind:
//
//	reg := section.ForKind(format.KindEndf6)
//	sec, err := reg.Read(text)          // dispatches on the MF/MT columns
//	xs := sec.(*section.CrossSection)
//	text, err = reg.Write(xs)
//
// Read and Write are exact inverses for canonically formatted sections: the
// text produced by Write parses back to an equal value, and canonical text
// read then written is returned unchanged.
//
// Sections with no registered codec return errs.ErrUnsupportedSection.
package section
