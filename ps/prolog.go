package ps

// prolog defines the short procedure names used by the page bodies.
//
// Stack comments list operands left to right.
const prolog = `/GS {gsave} bind def
/GR {grestore} bind def
/TR {translate} bind def
/SC {scale} bind def
/ROT {rotate} bind def
/LW {setlinewidth} bind def
/SD {setdash} bind def
/LC {setlinecap} bind def
/LJ {setlinejoin} bind def
/SRGB {setrgbcolor} bind def
/SGRAY {setgray} bind def
/NP {newpath} bind def
/MT {moveto} bind def
/LT {lineto} bind def
/CP {closepath} bind def
/ST {stroke} bind def
/FL {fill} bind def
% x y w h RPATH
/RPATH {NP 4 2 roll MT 1 index 0 rlineto 0 exch rlineto neg 0 rlineto CP} bind def
/R {RPATH ST} bind def
/RF {RPATH FL} bind def
/CL {RPATH clip NP} bind def
% x0 y0 x1 y1 L
/L {NP 4 2 roll MT LT ST} bind def
% x y PT
/PT {1 1 RF} bind def
% cx cy rx ry a1 a2 EP: elliptical arc path, counter-clockwise on the page
/EP {matrix currentmatrix 7 1 roll 6 -2 roll TR 4 -2 roll SC 0 0 1 5 -2 roll neg exch neg exch arcn setmatrix} bind def
% /new /base RE: copy of base with ISOLatin1Encoding
/RE {findfont dup length dict begin {1 index /FID ne {def} {pop pop} ifelse} forall /Encoding ISOLatin1Encoding def currentdict end definefont pop} bind def
% /name size FS: select font with the glyphs upright on the flipped page
/FS {exch findfont exch dup neg matrix scale makefont setfont} bind def
% (s) x y T
/T {MT show} bind def
`

// latin1Suffix names the reencoded copy of a base font.
const latin1Suffix = "-Latin1"
