package config

const SourceFileExt = ".bb"

// ArtifactFileExt is the extension of compiled Brainfuck artifacts.
const ArtifactFileExt = ".bf"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{".bb", ".brainbang"}

// TabWidth is how many spaces a tab counts for when measuring
// indentation.
const TabWidth = 4

// MaxCellValue is the largest value a tape cell (and therefore an
// `ent` literal) can hold.
const MaxCellValue = 255

// CommentMarker starts a line comment; everything from the marker to
// the end of the physical line is discarded.
const CommentMarker = "//"

// ProjectConfigFile is the optional per-project configuration file
// looked up next to the source file.
const ProjectConfigFile = "brainbang.yaml"
