package domain

// OrderingPair states that Dependent must be linked with Dependency available,
// which places Dependency before Dependent in the link order.
type OrderingPair struct {
	Dependent  string
	Dependency string
}

// builtinSpec is a row of the built-in library table.
type builtinSpec struct {
	name             string
	linkage          Linkage
	releaseLib       string
	debugLib         string
	releaseFramework string
	debugFramework   string
	headers          []string
	symbols          []string
	dependsOn        []string
	deploy           bool
}

// BuiltinLibraries returns the libraries known without any configuration.
// Several rows depend on platform: frameworks only exist on darwin, and the
// X11 family is only linked elsewhere.
func BuiltinLibraries(platform Platform) ([]*Library, error) {
	darwin := platform == PlatformDarwin

	fwk := LinkageDynamic
	var g3dX11, glfwX11, glfwOSX, appleGL, ffmpeg, fmod []string
	if darwin {
		fwk = LinkageFramework
		glfwOSX = []string{"IOKit", "CoreVideo"}
		appleGL = []string{"AppleGL"}
		ffmpeg = []string{"FFMPEG-util", "FFMPEG-codec", "FFMPEG-format", "FFMPEG-swscale"}
		fmod = []string{"FMOD"}
	} else {
		g3dX11 = []string{"X11"}
		glfwX11 = []string{"X11", "Xrandr", "Xi", "Xxf86vm", "Xcursor"}
	}

	glg3dDepends := concat([]string{"G3D", "OpenGL", "GLU", "glfw", "assimp", "glew", "nfd"}, ffmpeg, appleGL, g3dX11, fmod)
	glfwDepends := concat(glfwX11, glfwOSX)

	rows := []builtinSpec{
		{"SDL", fwk, "SDL", "SDL", "SDL", "SDL", []string{"SDL.h"}, []string{"SDL_GetMouseState"}, []string{"OpenGL", "Cocoa", "pthread"}, true},
		{"curses", LinkageDynamic, "curses", "curses", "", "", []string{"curses.h"}, nil, nil, false},
		{"zlib", LinkageDynamic, "z", "z", "", "", []string{"zlib.h"}, []string{"compress2"}, nil, false},
		{"zip", LinkageStatic, "zip", "zip", "", "", []string{"zip.h"}, []string{"zip_close"}, []string{"zlib"}, false},
		{"glut", fwk, "glut", "glut", "GLUT", "GLUT", []string{"glut.h"}, nil, nil, false},
		{"OpenGL", fwk, "GL", "GL", "OpenGL", "OpenGL", []string{"gl.h"}, []string{"glBegin", "glVertex3"}, nil, false},
		{"assimp", LinkageStatic, "assimp", "assimpd", "", "", []string{"assimp/Importer.hpp"}, nil, nil, false},
		{"glfw", LinkageStatic, "glfw", "glfwd", "", "", []string{"GL/glfw3.h"}, []string{"glfwCreateWindow", "_glfwCreateWindow"}, glfwDepends, false},
		{"glew", LinkageStatic, "glew", "glewd", "", "", []string{"GL/glew.h"}, []string{"_glewGetExtension", "glewGetExtension"}, nil, false},
		{"nfd", LinkageStatic, "nfd", "nfdd", "", "", []string{"nfd.h"}, []string{"_NFD_OpenDialog"}, nil, false},
		{"enet", LinkageStatic, "enet", "enetd", "", "", []string{"enet.h"}, []string{"enet_host_create"}, nil, false},
		{"freeimage", LinkageStatic, "freeimage", "freeimaged", "", "", []string{"FreeImagePlus.h", "FreeImage.h"}, nil, nil, false},
		{"GLU", fwk, "GLU", "GLU", "OpenGL", "OpenGL", []string{"glu.h"}, []string{"gluBuild2DMipmaps"}, []string{"OpenGL"}, false},
		{"Cocoa", LinkageFramework, "", "", "Cocoa", "Cocoa", []string{"Cocoa.h"}, []string{"DebugStr"}, nil, false},
		{"Carbon", LinkageFramework, "", "", "Carbon", "Carbon", []string{"Carbon.h"}, []string{"ShowWindow"}, nil, false},
		{"AppleGL", LinkageFramework, "", "", "AGL", "AGL", []string{"agl.h"}, []string{"_aglChoosePixelFormat"}, nil, false},
		{"G3D", LinkageStatic, "G3D", "G3Dd", "", "", []string{"G3D.h", "TextInput.h"}, nil, concat([]string{"zlib", "freeimage", "zip", "Cocoa", "pthread", "enet"}, g3dX11), false},
		{"GLG3D", LinkageStatic, "GLG3D", "GLG3Dd", "", "", []string{"GLG3D.h", "RenderDevice.h"}, nil, glg3dDepends, false},
		{"pthread", LinkageDynamic, "pthread", "pthread", "", "", []string{"pthread.h"}, nil, nil, false},
		{"math", LinkageDynamic, "m", "m", "", "", nil, nil, nil, false},
		{"QT", LinkageDynamic, "qt-mt", "qt-mt", "", "", []string{"qobject.h"}, nil, nil, true},
		{"CoreVideo", LinkageFramework, "", "", "CoreVideo", "CoreVideo", nil, nil, nil, false},
		{"IOKit", LinkageFramework, "", "", "IOKit", "IOKit", []string{"IOHIDKeys.h", "IOKitLib.h", "IOHIDLib.h"}, []string{"IOMasterPort"}, nil, false},
		{"X11", LinkageDynamic, "X11", "X11", "", "", []string{"x11.h"}, []string{"XSync", "XFlush"}, nil, false},
		{"Xrandr", LinkageDynamic, "Xrandr", "Xrandr", "", "", []string{"Xrandr.h"}, []string{"XRRQueryExtension"}, []string{"X11"}, false},
		{"Xi", LinkageDynamic, "Xi", "Xi", "", "", []string{"XInput2.h"}, []string{"XIQueryVersion"}, []string{"X11"}, false},
		{"Xcursor", LinkageDynamic, "Xcursor", "Xcursor", "", "", []string{"Xcursor.h"}, nil, []string{"X11"}, false},
		{"Xxf86vm", LinkageDynamic, "Xxf86vm", "Xxf86vm", "", "", nil, nil, nil, false},
		{"ANN", LinkageStatic, "ANN", "ANN", "", "", []string{"ANN.h"}, nil, nil, false},
		{"OpenCV", LinkageStatic, "cv", "cv", "", "", []string{"cv.h"}, nil, []string{"OpenCV-Aux", "OpenCV-Core"}, false},
		{"OpenCV-Aux", LinkageStatic, "cvaux", "cvaux", "", "", nil, nil, []string{"OpenCV-Core"}, false},
		{"OpenCV-Core", LinkageStatic, "cxcore", "cxcore", "", "", nil, nil, nil, false},
		{"FFMPEG-util", LinkageDynamic, "avutil.54", "avutil.54", "", "", []string{"avutil.h"}, []string{"av_malloc"}, nil, true},
		{"FFMPEG-codec", LinkageDynamic, "avcodec.56", "avcodec.56", "", "", []string{"avcodec.h"}, []string{"avcodec_open"}, []string{"zlib"}, true},
		{"FFMPEG-format", LinkageDynamic, "avformat.56", "avformat.56", "", "", []string{"avformat.h"}, []string{"av_register_all"}, []string{"FFMPEG-util"}, true},
		{"FFMPEG-swscale", LinkageDynamic, "swscale.3", "swscale.3", "", "", []string{"swscale.h"}, []string{"sws_scale"}, []string{"FFMPEG-util"}, true},
		{"FMOD", LinkageDynamic, "fmod", "fmod", "", "", []string{"fmod.hpp", "fmod.h"}, nil, []string{"FFMPEG-codec", "FFMPEG-util"}, true},
		{"mongoose", LinkageStatic, "mongoose", "mongoose", "", "", []string{"mongoose.h"}, nil, nil, false},
		{"civetweb", LinkageStatic, "civetweb", "civetweb", "", "", []string{"civetweb.h"}, nil, nil, false},
		{"qrencode", LinkageStatic, "qrencode", "qrencode", "", "", []string{"qrencode.h"}, []string{"_QRcode_encodeData"}, nil, false},
		{"irrKlang", LinkageDynamic, "irrklang", "irrklang", "", "", []string{"irrKlang.h"}, []string{"createIrrKlangDevice"}, nil, true},
		{"ply", LinkageStatic, "ply", "ply", "", "", []string{"ply.hpp"}, []string{"ply::ply_parser::parse"}, nil, false},
	}

	libs := make([]*Library, 0, len(rows))
	for _, r := range rows {
		lib, err := NewLibrary(r.name, r.linkage,
			WithBinaries(r.releaseLib, r.debugLib),
			WithFrameworks(r.releaseFramework, r.debugFramework),
			WithHeaders(r.headers...),
			WithSymbols(r.symbols...),
			WithDependsOn(r.dependsOn...),
			WithDeploy(r.deploy),
		)
		if err != nil {
			return nil, err
		}
		libs = append(libs, lib)
	}
	return libs, nil
}

// BuiltinOrderingPairs returns hand-curated link order constraints that the
// library table cannot express on its own.
func BuiltinOrderingPairs() []OrderingPair {
	return []OrderingPair{
		{"GLG3D", "G3D"}, {"G3D", "Cocoa"}, {"Cocoa", "SDL"}, {"SDL", "OpenGL"},
		{"GLU", "OpenGL"}, {"GLG3D", "glew"}, {"GLG3D", "GLU"}, {"G3D", "zlib"},
		{"G3D", "zip"}, {"G3D", "freeimage"}, {"Cocoa", "pthread"}, {"G3D", "enet"},
		{"Cocoa", "zlib"}, {"OpenGL", "pthread"}, {"Cocoa", "Carbon"},
		{"FFMPEG-format", "FFMPEG-codec"}, {"FFMPEG-codec", "FFMPEG-util"}, {"FFMPEG-format", "zlib"},
		{"GLG3D", "FFMPEG-format"}, {"glfw", "X11"}, {"glfw", "Xrandr"}, {"glfw", "Xi"},
		{"glfw", "Xcursor"}, {"G3D", "X11"}, {"GLG3D", "glfw"}, {"GLG3D", "assimp"},
		{"glfw", "Xxf86vm"},
	}
}

func concat(lists ...[]string) []string {
	var out []string
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}
