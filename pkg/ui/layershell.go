package ui

import (
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"
)

/*
#cgo pkg-config: gtk4-layer-shell-0 gtk4
#include <gtk4-layer-shell.h>
#include <gtk/gtk.h>

void init_settings_layer_shell(GtkWidget *window) {
    gtk_layer_init_for_window(GTK_WINDOW(window));
    gtk_layer_set_layer(GTK_WINDOW(window), GTK_LAYER_SHELL_LAYER_OVERLAY);
    gtk_layer_set_keyboard_mode(GTK_WINDOW(window), GTK_LAYER_SHELL_KEYBOARD_MODE_EXCLUSIVE);
}
*/
import "C"

// initLayerShell must run before the window is presented.
func initLayerShell(window *gtk.Window) {
	obj := window.Object
	if obj != nil {
		ptr := obj.Native()
		C.init_settings_layer_shell((*C.GtkWidget)(unsafe.Pointer(ptr)))
	}
}
